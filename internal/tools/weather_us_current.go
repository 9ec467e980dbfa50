package tools

import (
	"context"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
)

// WeatherUSCurrent reports current conditions for a US location.
type WeatherUSCurrent struct {
	nws *nwsClient
	geo *geocode.Client
}

func NewWeatherUSCurrent(geo *geocode.Client) *WeatherUSCurrent {
	return &WeatherUSCurrent{nws: newNWSClient(), geo: geo}
}

func (*WeatherUSCurrent) Name() string { return "weather_us_current" }

func (*WeatherUSCurrent) Description() string {
	return "Get the current weather for a location in the United States. " +
		"Can be searched by city name or latitude/longitude. " +
		"Only for the United States (USA)."
}

func (*WeatherUSCurrent) Schema() tool.Schema {
	return tool.NewSchema(usLocationFields()...)
}

func (t *WeatherUSCurrent) Run(ctx context.Context, args tool.Args) []tool.Content {
	lat, lon, err := resolveUSCoordinates(ctx, t.geo, args)
	if err != nil {
		if err == errNoCoordinates {
			return tool.Textf("Error: Either city or latitude/longitude must be provided")
		}
		return tool.Textf("Geocoding error: %v", err)
	}

	periods, err := t.nws.forecast(ctx, lat, lon)
	if err != nil {
		return tool.Textf("HTTP Error: %v", err)
	}
	if len(periods) == 0 {
		return tool.Textf("Data parsing error: no forecast periods")
	}

	current := periods[0]
	return tool.Textf(
		"Location: %s (%v, %v)\nTemperature: %s\nWind: %s %s\nForecast: %s\nDetailed Forecast: %s",
		args.String("city"), lat, lon,
		temperatureLine(current),
		current.WindSpeed, current.WindDirection,
		current.ShortForecast, current.DetailedForecast)
}
