package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
)

// WeatherUSForecast returns the multi-day forecast for a US location.
// The NWS splits each day into a day and a night period.
type WeatherUSForecast struct {
	nws *nwsClient
	geo *geocode.Client
}

func NewWeatherUSForecast(geo *geocode.Client) *WeatherUSForecast {
	return &WeatherUSForecast{nws: newNWSClient(), geo: geo}
}

func (*WeatherUSForecast) Name() string { return "weather_us_forecast" }

func (*WeatherUSForecast) Description() string {
	return "Get weather forecast for a United States location. " +
		"Can be searched by city name or latitude/longitude. " +
		"Only for the United States (USA)."
}

func (*WeatherUSForecast) Schema() tool.Schema {
	fields := usLocationFields()
	fields = append(fields, tool.Field{
		Name:        "days",
		Type:        tool.TypeInteger,
		Default:     7,
		Min:         tool.FloatPtr(1),
		Max:         tool.FloatPtr(14),
		Description: "Number of forecast days to retrieve (max 14)",
	})
	return tool.NewSchema(fields...)
}

func (t *WeatherUSForecast) Run(ctx context.Context, args tool.Args) []tool.Content {
	lat, lon, err := resolveUSCoordinates(ctx, t.geo, args)
	if err != nil {
		if err == errNoCoordinates {
			return tool.Textf("Error: Either city or latitude/longitude must be provided")
		}
		return tool.Textf("Geocoding error: %v", err)
	}

	days := args.Int("days")
	if days <= 0 {
		days = 7
	}

	periods, err := t.nws.forecast(ctx, lat, lon)
	if err != nil {
		return tool.Textf("HTTP Error: %v", err)
	}
	if limit := days * 2; len(periods) > limit {
		periods = periods[:limit]
	}

	sections := make([]string, 0, len(periods))
	for _, p := range periods {
		sections = append(sections, fmt.Sprintf(
			"Location: %s(%v, %v)\n%s: %s %s\nWind: %s %s\nDetailed: %s\n---",
			args.String("city"), lat, lon,
			p.Name, temperatureLine(p), p.ShortForecast,
			p.WindSpeed, p.WindDirection, p.DetailedForecast))
	}
	return tool.Textf("%s", strings.Join(sections, "\n"))
}
