package tools

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// BraveWebSearch queries the Brave Search API for general web results.
type BraveWebSearch struct {
	client *braveClient
}

func NewBraveWebSearch(interval time.Duration) *BraveWebSearch {
	return &BraveWebSearch{client: newBraveClient(interval)}
}

func (*BraveWebSearch) Name() string { return "web_brave_web_search" }

func (*BraveWebSearch) Description() string {
	return "Performs a web search using the Brave Search API, ideal for general queries, news, articles, and online content. " +
		"Use this for broad information gathering, recent events, or when you need diverse web sources. " +
		"Supports pagination, content filtering, and freshness controls. " +
		"Maximum 20 results per request, with offset for pagination."
}

func (*BraveWebSearch) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "query",
			Type:        tool.TypeString,
			Required:    true,
			MaxLen:      400,
			Description: "Search query (max 400 chars, 50 words)",
		},
		tool.Field{
			Name:        "count",
			Type:        tool.TypeInteger,
			Default:     10,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(20),
			Description: "Number of results (1-20, default 10)",
		},
		tool.Field{
			Name:        "offset",
			Type:        tool.TypeInteger,
			Default:     0,
			Min:         tool.FloatPtr(0),
			Max:         tool.FloatPtr(9),
			Description: "Pagination offset (max 9, default 0)",
		},
	)
}

func (t *BraveWebSearch) Run(ctx context.Context, args tool.Args) []tool.Content {
	env := args.Env("BRAVE_")
	apiKey := env["BRAVE_API_KEY"]
	if apiKey == "" {
		return tool.Textf("Missing required BRAVE_API_KEY environment variables")
	}

	count := args.Int("count")
	if count > 20 {
		count = 20
	}

	params := url.Values{}
	params.Set("q", args.String("query"))
	params.Set("count", strconv.Itoa(count))
	params.Set("offset", strconv.Itoa(args.Int("offset")))

	var resp braveWebResponse
	if err := t.client.get(ctx, apiKey, "/web/search", params, &resp); err != nil {
		return braveError(err)
	}
	return formatBraveWebResults(resp.Web.Results)
}
