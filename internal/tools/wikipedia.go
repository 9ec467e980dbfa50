package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// summaryCharsMax caps each article extract.
const summaryCharsMax = 500

// WikipediaSearch queries the MediaWiki API for articles and returns
// title plus a trimmed summary per hit.
type WikipediaSearch struct {
	baseURL    func(region string) string
	httpClient *http.Client
}

func NewWikipediaSearch() *WikipediaSearch {
	return &WikipediaSearch{
		baseURL: func(region string) string {
			return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", region)
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWikipediaSearchWithBaseURL is used by tests.
func NewWikipediaSearchWithBaseURL(base string) *WikipediaSearch {
	w := NewWikipediaSearch()
	w.baseURL = func(string) string { return base }
	return w
}

func (*WikipediaSearch) Name() string { return "wikipedia_search" }

func (*WikipediaSearch) Description() string {
	return "Search Wikipedia articles and get summaries of the content"
}

func (*WikipediaSearch) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "query",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The search query to find information on Wikipedia",
		},
		tool.Field{
			Name:        "num_results",
			Type:        tool.TypeInteger,
			Default:     8,
			Description: "Number of results to return",
		},
		tool.Field{
			Name:        "region",
			Type:        tool.TypeString,
			Default:     "en",
			Description: "Wikipedia language region",
		},
	)
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (t *WikipediaSearch) Run(ctx context.Context, args tool.Args) []tool.Content {
	query := args.String("query")
	numResults := args.Int("num_results")
	region := args.String("region")

	if query == "" {
		return tool.Textf("Missing required argument: query")
	}
	if numResults <= 0 {
		numResults = 8
	}
	if region == "" {
		region = "en"
	}
	base := t.baseURL(region)

	titles, err := t.search(ctx, base, query, numResults)
	if err != nil {
		return tool.Textf("Error performing search: %v", err)
	}
	if len(titles) == 0 {
		return tool.Textf("No good Wikipedia Search Result was found")
	}

	sections := make([]string, 0, len(titles))
	for _, title := range titles {
		summary, err := t.extract(ctx, base, title)
		if err != nil {
			continue
		}
		sections = append(sections, fmt.Sprintf("Page: %s\nSummary: %s", title, summary))
	}
	if len(sections) == 0 {
		return tool.Textf("No good Wikipedia Search Result was found")
	}
	return tool.Textf("%s", strings.Join(sections, "\n\n"))
}

func (t *WikipediaSearch) search(ctx context.Context, base, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))

	var resp wikiSearchResponse
	if err := t.getJSON(ctx, base+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func (t *WikipediaSearch) extract(ctx context.Context, base, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exintro", "1")
	params.Set("titles", title)

	var resp wikiExtractResponse
	if err := t.getJSON(ctx, base+"?"+params.Encode(), &resp); err != nil {
		return "", err
	}
	for _, page := range resp.Query.Pages {
		summary := page.Extract
		if len(summary) > summaryCharsMax {
			summary = summary[:summaryCharsMax]
		}
		return summary, nil
	}
	return "", fmt.Errorf("no extract for %q", title)
}

func (t *WikipediaSearch) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "agenttools/1.0")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
