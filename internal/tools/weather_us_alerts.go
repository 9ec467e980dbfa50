package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// WeatherUSAlerts lists active NWS alerts for a US state.
type WeatherUSAlerts struct {
	nws *nwsClient
}

func NewWeatherUSAlerts() *WeatherUSAlerts {
	return &WeatherUSAlerts{nws: newNWSClient()}
}

func (*WeatherUSAlerts) Name() string { return "weather_us_alerts" }

func (*WeatherUSAlerts) Description() string {
	return "Retrieves current weather alerts for a specified US location. " +
		"Returns active severe weather warnings, watches, and advisories. " +
		"Only for the United States (USA)."
}

func (*WeatherUSAlerts) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "state",
			Type:        tool.TypeString,
			Required:    true,
			MinLen:      2,
			MaxLen:      2,
			Pattern:     `^[A-Z]{2}$`,
			Description: "Two-letter state code (e.g., 'CA', 'NY')",
		},
	)
}

type nwsAlertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			AreaDesc    string `json:"areaDesc"`
			Severity    string `json:"severity"`
			Status      string `json:"status"`
			Description string `json:"description"`
		} `json:"properties"`
	} `json:"features"`
}

func (t *WeatherUSAlerts) Run(ctx context.Context, args tool.Args) []tool.Content {
	state := args.String("state")

	var data nwsAlertsResponse
	endpoint := fmt.Sprintf("%s/alerts/active?area=%s", t.nws.baseURL, state)
	if err := t.nws.getJSON(ctx, endpoint, &data); err != nil {
		return tool.Textf("HTTP Error: %v", err)
	}

	if len(data.Features) == 0 {
		return tool.Textf("No active weather alerts for %s", state)
	}

	sections := make([]string, 0, len(data.Features))
	for _, feature := range data.Features {
		p := feature.Properties
		sections = append(sections, fmt.Sprintf(
			"Event: %s\nArea: %s\nSeverity: %s\nStatus: %s\nDescription: %s\n---",
			p.Event, p.AreaDesc, p.Severity, p.Status, p.Description))
	}
	return tool.Textf("%s", strings.Join(sections, "\n"))
}
