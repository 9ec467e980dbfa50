// Package geocode resolves city names to coordinates via the OSM
// Nominatim REST API using stdlib net/http.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// userAgent identifies us to Nominatim, which rejects anonymous clients.
const userAgent = "WeatherApp/1.0"

// Location is one geocoding match.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	CountryCode string
}

// Client calls the Nominatim search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client with a 15s default timeout.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Geocode resolves a free-form place query to its best match.
func (c *Client) Geocode(ctx context.Context, query string) (*Location, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1&addressdetails=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("could not find location for %q", query)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("geocode: invalid coordinates for %q", query)
	}

	return &Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
		CountryCode: strings.ToLower(results[0].Address.CountryCode),
	}, nil
}
