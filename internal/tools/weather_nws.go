package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/geocode"
)

const nwsAPIBase = "https://api.weather.gov"

const nwsUserAgent = "WeatherApp/1.0 (contact@example.com)"

// nwsClient wraps the National Weather Service REST API. Forecasts are
// a two-step lookup: /points resolves the grid, the grid yields the
// forecast URL.
type nwsClient struct {
	baseURL    string
	httpClient *http.Client
}

func newNWSClient() *nwsClient {
	return &nwsClient{
		baseURL:    nwsAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type nwsPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

type nwsForecastResponse struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsPointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

func (c *nwsClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", nwsUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d for %s", resp.StatusCode, endpoint)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// forecast resolves coordinates to forecast periods.
func (c *nwsClient) forecast(ctx context.Context, lat, lon float64) ([]nwsPeriod, error) {
	var points nwsPointsResponse
	pointsURL := fmt.Sprintf("%s/points/%v,%v", c.baseURL, lat, lon)
	if err := c.getJSON(ctx, pointsURL, &points); err != nil {
		return nil, err
	}
	if points.Properties.Forecast == "" {
		return nil, fmt.Errorf("no forecast grid for %v,%v", lat, lon)
	}

	var forecast nwsForecastResponse
	if err := c.getJSON(ctx, points.Properties.Forecast, &forecast); err != nil {
		return nil, err
	}
	return forecast.Properties.Periods, nil
}

// fahrenheitToCelsius rounds to one decimal place.
func fahrenheitToCelsius(f int) float64 {
	return math.Round(float64(f-32)*5.0/9.0*10) / 10
}

func temperatureLine(p nwsPeriod) string {
	if p.TemperatureUnit == "F" {
		return fmt.Sprintf("%d°%s (%v°C)", p.Temperature, p.TemperatureUnit,
			fahrenheitToCelsius(p.Temperature))
	}
	return fmt.Sprintf("%d°%s ", p.Temperature, p.TemperatureUnit)
}

// resolveUSCoordinates produces coordinates from explicit lat/lon or a
// geocoded US city. The city must resolve inside the United States.
func resolveUSCoordinates(ctx context.Context, geo *geocode.Client, args tool.Args) (lat, lon float64, err error) {
	lat, hasLat := args.FloatOk("latitude")
	lon, hasLon := args.FloatOk("longitude")
	city := args.String("city")

	if city != "" && (!hasLat || !hasLon) {
		loc, geoErr := geo.Geocode(ctx, city+", USA")
		if geoErr != nil {
			return 0, 0, geoErr
		}
		if loc.CountryCode != "us" {
			return 0, 0, fmt.Errorf("location %s is not in the United States", city)
		}
		return loc.Latitude, loc.Longitude, nil
	}
	if !hasLat || !hasLon {
		return 0, 0, errNoCoordinates
	}
	return lat, lon, nil
}

var errNoCoordinates = fmt.Errorf("either city or latitude/longitude must be provided")

// usLocationFields is the shared schema fragment of the NWS tools.
func usLocationFields() []tool.Field {
	return []tool.Field{
		{
			Name:        "latitude",
			Type:        tool.TypeNumber,
			Min:         tool.FloatPtr(-90),
			Max:         tool.FloatPtr(90),
			Description: "Latitude of the location",
		},
		{
			Name:        "longitude",
			Type:        tool.TypeNumber,
			Min:         tool.FloatPtr(-180),
			Max:         tool.FloatPtr(180),
			Description: "Longitude of the location",
		},
		{
			Name:        "city",
			Type:        tool.TypeString,
			MaxLen:      60,
			Description: "Name of the city in the United States",
		},
	}
}
