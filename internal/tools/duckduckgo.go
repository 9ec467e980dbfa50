package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

const duckduckgoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoSearch queries the DuckDuckGo HTML endpoint and parses the
// result list. No API key required.
type DuckDuckGoSearch struct {
	baseURL    string
	httpClient *http.Client
}

func NewDuckDuckGoSearch() *DuckDuckGoSearch {
	return NewDuckDuckGoSearchWithBaseURL(duckduckgoEndpoint)
}

// NewDuckDuckGoSearchWithBaseURL is used by tests.
func NewDuckDuckGoSearchWithBaseURL(baseURL string) *DuckDuckGoSearch {
	return &DuckDuckGoSearch{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (*DuckDuckGoSearch) Name() string { return "web_duckduckgo_search" }

func (*DuckDuckGoSearch) Description() string {
	return "DuckDuckGo search engine that emphasizes user privacy. " +
		"It's often described as a privacy-focused alternative to Google Search Engine."
}

func (*DuckDuckGoSearch) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "query",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The search query to look up",
		},
		tool.Field{
			Name:        "num_results",
			Type:        tool.TypeInteger,
			Default:     8,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(50),
			Description: "Number of results to return (default: 8)",
		},
		tool.Field{
			Name:        "region",
			Type:        tool.TypeString,
			Default:     "en-en",
			Description: "The region to use for the search (default: en-en)",
		},
	)
}

type searchHit struct {
	Title   string
	Link    string
	Snippet string
}

func (t *DuckDuckGoSearch) Run(ctx context.Context, args tool.Args) []tool.Content {
	query := args.String("query")
	numResults := args.Int("num_results")
	region := args.String("region")

	if query == "" {
		return tool.Textf("Missing required argument: query")
	}
	if numResults <= 0 {
		numResults = 8
	}

	form := url.Values{}
	form.Set("q", query)
	form.Set("kl", region)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return tool.Textf("Error performing search: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; agenttools/1.0)")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return tool.Textf("Error performing search: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return tool.Textf("Error performing search: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return tool.Textf("Error performing search: %v", err)
	}

	hits := parseDuckDuckGoResults(doc)
	if len(hits) > numResults {
		hits = hits[:numResults]
	}
	if len(hits) == 0 {
		return tool.Textf("No results found for query: %s", query)
	}

	out := make([]tool.Content, 0, len(hits))
	for _, hit := range hits {
		out = append(out, tool.TextContent{Text: fmt.Sprintf(
			"Title: %s\nLink: %s\nSnippet: %s\n\n", hit.Title, hit.Link, hit.Snippet)})
	}
	return out
}

// parseDuckDuckGoResults walks the HTML endpoint's result list: each
// hit is a div.result holding an a.result__a title link and an
// a.result__snippet text.
func parseDuckDuckGoResults(doc *html.Node) []searchHit {
	var hits []searchHit
	for _, result := range findMatches(doc, ".result") {
		var hit searchHit
		if anchors := findMatches(result, ".result__a"); len(anchors) > 0 {
			hit.Title = strings.TrimSpace(nodeText(anchors[0]))
			hit.Link = cleanDuckDuckGoLink(attrValue(anchors[0], "href"))
		}
		if snippets := findMatches(result, ".result__snippet"); len(snippets) > 0 {
			hit.Snippet = strings.TrimSpace(nodeText(snippets[0]))
		}
		if hit.Title != "" || hit.Link != "" || hit.Snippet != "" {
			hits = append(hits, hit)
		}
	}
	return hits
}

// cleanDuckDuckGoLink unwraps the /l/?uddg= redirect the endpoint
// wraps external links in.
func cleanDuckDuckGoLink(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		if unescaped, err := url.QueryUnescape(target); err == nil {
			return unescaped
		}
	}
	return raw
}
