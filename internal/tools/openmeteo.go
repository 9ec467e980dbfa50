package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
	"github.com/mwozniczak/agenttools/internal/infra/httpcache"
)

const openMeteoAPIBase = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoForecast fetches a worldwide forecast from the Open-Meteo
// API, caching responses for an hour and retrying transient failures.
type OpenMeteoForecast struct {
	baseURL string
	cache   *httpcache.Client
	geo     *geocode.Client
}

func NewOpenMeteoForecast(cache *httpcache.Client, geo *geocode.Client) *OpenMeteoForecast {
	if cache == nil {
		cache = httpcache.New(".cache", time.Hour)
	}
	return &OpenMeteoForecast{baseURL: openMeteoAPIBase, cache: cache, geo: geo}
}

func (*OpenMeteoForecast) Name() string { return "weather_open_meteo_forecast" }

func (*OpenMeteoForecast) Description() string {
	return "Get weather forecast using Open Meteo API. " +
		"Can be searched by city name or latitude/longitude. " +
		"Supports current and hourly weather data."
}

func (*OpenMeteoForecast) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "city",
			Type:        tool.TypeString,
			MaxLen:      60,
			Description: "Name of the city",
		},
		tool.Field{
			Name:        "latitude",
			Type:        tool.TypeNumber,
			Min:         tool.FloatPtr(-90),
			Max:         tool.FloatPtr(90),
			Description: "Latitude of the location",
		},
		tool.Field{
			Name:        "longitude",
			Type:        tool.TypeNumber,
			Min:         tool.FloatPtr(-180),
			Max:         tool.FloatPtr(180),
			Description: "Longitude of the location",
		},
		tool.Field{
			Name:        "days",
			Type:        tool.TypeInteger,
			Default:     7,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(14),
			Description: "Number of forecast days to retrieve (max 14)",
		},
		tool.Field{
			Name:        "include_current",
			Type:        tool.TypeBoolean,
			Default:     true,
			Description: "Include current weather conditions",
		},
		tool.Field{
			Name:        "include_hourly",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "Include hourly forecast data",
		},
	)
}

type openMeteoResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Elevation      float64 `json:"elevation"`
	Timezone       string  `json:"timezone"`
	TimezoneAbbrev string  `json:"timezone_abbreviation"`
	UTCOffset      int     `json:"utc_offset_seconds"`
	Current        map[string]any `json:"current"`
	Hourly         struct {
		Time             []string  `json:"time"`
		Temperature2m    []float64 `json:"temperature_2m"`
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
		WindSpeed10m     []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

func (t *OpenMeteoForecast) Run(ctx context.Context, args tool.Args) []tool.Content {
	city := args.String("city")
	lat, hasLat := args.FloatOk("latitude")
	lon, hasLon := args.FloatOk("longitude")

	switch {
	case city != "":
		loc, err := t.geo.Geocode(ctx, city)
		if err != nil {
			return tool.Errorf(500, "Weather retrieval error: %v", err)
		}
		lat, lon = loc.Latitude, loc.Longitude
	case hasLat && hasLon:
	default:
		return tool.Errorf(400, "Either city or latitude/longitude must be provided")
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("forecast_days", strconv.Itoa(args.Int("days")))
	if args.Bool("include_current") {
		params.Set("current", "temperature_2m,wind_speed_10m,relative_humidity_2m")
	}
	if args.Bool("include_hourly") {
		params.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m")
	}
	endpoint := t.baseURL + "?" + params.Encode()

	body, err := t.fetchWithRetry(ctx, endpoint)
	if err != nil {
		var statusErr *httpcache.StatusError
		if errors.As(err, &statusErr) {
			return tool.Errorf(statusErr.Code, "Weather retrieval error: %s", statusErr.Body)
		}
		return tool.Errorf(500, "Weather retrieval error: %v", err)
	}

	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return tool.Errorf(500, "Weather retrieval error: %v", err)
	}

	result := map[string]any{
		"coordinates": map[string]any{
			"latitude":  resp.Latitude,
			"longitude": resp.Longitude,
			"elevation": resp.Elevation,
		},
		"timezone": map[string]any{
			"name":               resp.Timezone,
			"abbreviation":       resp.TimezoneAbbrev,
			"utc_offset_seconds": resp.UTCOffset,
		},
	}
	if args.Bool("include_current") && resp.Current != nil {
		result["current"] = resp.Current
	}
	if args.Bool("include_hourly") && len(resp.Hourly.Time) > 0 {
		hourly := make([]map[string]any, 0, len(resp.Hourly.Time))
		for i, ts := range resp.Hourly.Time {
			entry := map[string]any{"date": ts}
			if i < len(resp.Hourly.Temperature2m) {
				entry["temperature_2m"] = resp.Hourly.Temperature2m[i]
			}
			if i < len(resp.Hourly.RelativeHumidity) {
				entry["relative_humidity_2m"] = resp.Hourly.RelativeHumidity[i]
			}
			if i < len(resp.Hourly.WindSpeed10m) {
				entry["wind_speed_10m"] = resp.Hourly.WindSpeed10m[i]
			}
			hourly = append(hourly, entry)
		}
		result["hourly"] = hourly
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return tool.Errorf(500, "Weather retrieval error: %v", err)
	}
	return tool.Textf("%s", out)
}

// fetchWithRetry retries transient failures with exponential backoff.
// Upstream 4xx responses are permanent.
func (t *OpenMeteoForecast) fetchWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(backoff.WithInitialInterval(200*time.Millisecond)), 5), ctx)

	return backoff.RetryWithData(func() ([]byte, error) {
		body, err := t.cache.Get(ctx, endpoint, nil)
		if err != nil {
			var statusErr *httpcache.StatusError
			if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return body, nil
	}, policy)
}
