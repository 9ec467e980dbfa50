package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// BraveLocalSearch finds businesses and places through Brave's local
// search, falling back to a web search when no locations match.
type BraveLocalSearch struct {
	client *braveClient
}

func NewBraveLocalSearch(interval time.Duration) *BraveLocalSearch {
	return &BraveLocalSearch{client: newBraveClient(interval)}
}

func (*BraveLocalSearch) Name() string { return "web_brave_local_search" }

func (*BraveLocalSearch) Description() string {
	return "Searches for local businesses and places using Brave's Local Search API.\n" +
		"Best for queries related to physical locations, businesses, restaurants, services, etc.\n" +
		"Returns detailed information including:\n" +
		"- Business names and addresses\n" +
		"- Ratings and review counts\n" +
		"- Phone numbers and opening hours\n" +
		"Use this when the query implies 'near me' or mentions specific locations.\n" +
		"Automatically falls back to web search if no local results are found."
}

func (*BraveLocalSearch) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "query",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Local search query (e.g. 'pizza near Central Park')",
		},
		tool.Field{
			Name:        "count",
			Type:        tool.TypeInteger,
			Default:     5,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(20),
			Description: "Number of results (1-20, default 5)",
		},
	)
}

type bravePOI struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address struct {
		StreetAddress   string `json:"streetAddress"`
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
		PostalCode      string `json:"postalCode"`
	} `json:"address"`
	Rating struct {
		RatingValue float64 `json:"ratingValue"`
		RatingCount int     `json:"ratingCount"`
	} `json:"rating"`
	PriceRange   string   `json:"priceRange"`
	OpeningHours []string `json:"openingHours"`
}

type bravePOIResponse struct {
	Results []bravePOI `json:"results"`
}

type braveDescResponse struct {
	Descriptions map[string]string `json:"descriptions"`
}

func (t *BraveLocalSearch) Run(ctx context.Context, args tool.Args) []tool.Content {
	env := args.Env("BRAVE_")
	apiKey := env["BRAVE_API_KEY"]
	if apiKey == "" {
		return tool.Textf("Missing required BRAVE_API_KEY environment variables")
	}

	query := args.String("query")
	if query == "" {
		return tool.Textf("Missing required argument: query")
	}
	count := args.Int("count")
	if count > 20 {
		count = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("search_lang", "en")
	params.Set("result_filter", "locations")
	params.Set("count", strconv.Itoa(count))

	var locResp braveWebResponse
	if err := t.client.get(ctx, apiKey, "/web/search", params, &locResp); err != nil {
		return braveError(err)
	}

	ids := make([]string, 0, len(locResp.Locations.Results))
	for _, r := range locResp.Locations.Results {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	if len(ids) == 0 {
		return t.webFallback(ctx, apiKey, query, count)
	}

	idParams := url.Values{}
	for _, id := range ids {
		idParams.Add("ids", id)
	}

	var pois bravePOIResponse
	if err := t.client.get(ctx, apiKey, "/local/pois", idParams, &pois); err != nil {
		return braveError(err)
	}
	var descs braveDescResponse
	if err := t.client.get(ctx, apiKey, "/local/descriptions", idParams, &descs); err != nil {
		return braveError(err)
	}

	return formatLocalResults(pois, descs)
}

func (t *BraveLocalSearch) webFallback(ctx context.Context, apiKey, query string, count int) []tool.Content {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))

	var resp braveWebResponse
	if err := t.client.get(ctx, apiKey, "/web/search", params, &resp); err != nil {
		return braveError(err)
	}
	return formatBraveWebResults(resp.Web.Results)
}

func formatLocalResults(pois bravePOIResponse, descs braveDescResponse) []tool.Content {
	out := make([]tool.Content, 0, len(pois.Results))
	for _, poi := range pois.Results {
		addressParts := []string{
			poi.Address.StreetAddress,
			poi.Address.AddressLocality,
			poi.Address.AddressRegion,
			poi.Address.PostalCode,
		}
		nonEmpty := make([]string, 0, len(addressParts))
		for _, part := range addressParts {
			if part != "" {
				nonEmpty = append(nonEmpty, part)
			}
		}
		address := strings.Join(nonEmpty, ", ")
		if address == "" {
			address = "N/A"
		}

		hours := strings.Join(poi.OpeningHours, ", ")
		if hours == "" {
			hours = "N/A"
		}
		description := descs.Descriptions[poi.ID]
		if description == "" {
			description = "No description available"
		}
		name := poi.Name
		if name == "" {
			name = "N/A"
		}
		phone := poi.Phone
		if phone == "" {
			phone = "N/A"
		}
		priceRange := poi.PriceRange
		if priceRange == "" {
			priceRange = "N/A"
		}

		out = append(out, tool.TextContent{Text: fmt.Sprintf(
			"Name: %s\nAddress: %s\nPhone: %s\nRating: %v (%d reviews)\nPrice Range: %s\nHours: %s\nDescription: %s",
			name, address, phone, poi.Rating.RatingValue, poi.Rating.RatingCount,
			priceRange, hours, description)})
	}
	return out
}
