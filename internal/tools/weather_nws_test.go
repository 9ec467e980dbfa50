package tools

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwozniczak/agenttools/internal/infra/geocode"
)

const nwsForecastBody = `{"properties":{"periods":[
	{"name":"Today","temperature":68,"temperatureUnit":"F","windSpeed":"10 mph","windDirection":"NW",
	 "shortForecast":"Sunny","detailedForecast":"Sunny with a light breeze."},
	{"name":"Tonight","temperature":50,"temperatureUnit":"F","windSpeed":"5 mph","windDirection":"N",
	 "shortForecast":"Clear","detailedForecast":"Clear skies overnight."},
	{"name":"Tuesday","temperature":72,"temperatureUnit":"F","windSpeed":"12 mph","windDirection":"W",
	 "shortForecast":"Partly Cloudy","detailedForecast":"Some clouds in the afternoon."}
]}}`

// newNWSServer serves the two-step points-then-forecast lookup.
func newNWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/points/"):
			w.Write([]byte(`{"properties":{"forecast":"` + srv.URL + `/gridpoints/XYZ/1,2/forecast"}}`)) //nolint:errcheck
		case strings.HasPrefix(r.URL.Path, "/gridpoints/"):
			w.Write([]byte(nwsForecastBody)) //nolint:errcheck
		default:
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newGeoServer geocodes every query to a fixed location.
func newGeoServer(t *testing.T, lat, lon, countryCode string) *geocode.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`[{"lat":"` + lat + `","lon":"` + lon +
			`","display_name":"Somewhere","address":{"country_code":"` + countryCode + `"}}]`))
	}))
	t.Cleanup(srv.Close)
	return geocode.NewClientWithBaseURL(srv.URL)
}

func TestWeatherUSCurrent_ByCoordinates(t *testing.T) {
	t.Parallel()

	wc := NewWeatherUSCurrent(nil)
	wc.nws.baseURL = newNWSServer(t).URL

	got := firstText(t, runTool(t, wc, map[string]any{
		"latitude":  41.88,
		"longitude": -87.63,
	}))
	for _, want := range []string{
		"Temperature: 68°F (20°C)",
		"Wind: 10 mph NW",
		"Forecast: Sunny",
		"Detailed Forecast: Sunny with a light breeze.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q; want %q", got, want)
		}
	}
}

func TestWeatherUSCurrent_ByCity(t *testing.T) {
	t.Parallel()

	wc := NewWeatherUSCurrent(newGeoServer(t, "41.88", "-87.63", "us"))
	wc.nws.baseURL = newNWSServer(t).URL

	got := firstText(t, runTool(t, wc, map[string]any{"city": "Chicago"}))
	if !strings.Contains(got, "Location: Chicago (41.88, -87.63)") {
		t.Errorf("output = %q; want geocoded location header", got)
	}
}

func TestWeatherUSCurrent_RejectsNonUSCity(t *testing.T) {
	t.Parallel()

	wc := NewWeatherUSCurrent(newGeoServer(t, "48.85", "2.35", "fr"))
	wc.nws.baseURL = newNWSServer(t).URL

	got := firstText(t, runTool(t, wc, map[string]any{"city": "Paris"}))
	if !strings.Contains(got, "is not in the United States") {
		t.Errorf("output = %q; want non-US rejection", got)
	}
}

func TestWeatherUSCurrent_MissingLocation(t *testing.T) {
	t.Parallel()

	got := firstText(t, runTool(t, NewWeatherUSCurrent(nil), map[string]any{}))
	if got != "Error: Either city or latitude/longitude must be provided" {
		t.Errorf("output = %q; want missing-location message", got)
	}
}

func TestWeatherUSCurrent_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	wc := NewWeatherUSCurrent(nil)
	wc.nws.baseURL = srv.URL

	got := firstText(t, runTool(t, wc, map[string]any{"latitude": 1.0, "longitude": 2.0}))
	if !strings.HasPrefix(got, "HTTP Error:") {
		t.Errorf("output = %q; want HTTP error", got)
	}
}

func TestWeatherUSForecast_LimitsPeriodsToDays(t *testing.T) {
	t.Parallel()

	wf := NewWeatherUSForecast(nil)
	wf.nws.baseURL = newNWSServer(t).URL

	got := firstText(t, runTool(t, wf, map[string]any{
		"latitude":  41.88,
		"longitude": -87.63,
		"days":      1,
	}))
	// One day covers the day and night periods only.
	if !strings.Contains(got, "Today:") || !strings.Contains(got, "Tonight:") {
		t.Errorf("output = %q; want first two periods", got)
	}
	if strings.Contains(got, "Tuesday") {
		t.Errorf("output = %q; third period must be cut at days*2", got)
	}
}

func TestWeatherUSAlerts_FormatsAlerts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alerts/active" || r.URL.Query().Get("area") != "CA" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		//nolint:errcheck
		w.Write([]byte(`{"features":[{"properties":{
			"event":"Heat Advisory","areaDesc":"Central Valley","severity":"Moderate",
			"status":"Actual","description":"Temperatures up to 105F expected."
		}}]}`))
	}))
	t.Cleanup(srv.Close)

	wa := NewWeatherUSAlerts()
	wa.nws.baseURL = srv.URL

	got := firstText(t, runTool(t, wa, map[string]any{"state": "CA"}))
	for _, want := range []string{
		"Event: Heat Advisory",
		"Area: Central Valley",
		"Severity: Moderate",
		"Status: Actual",
		"Description: Temperatures up to 105F expected.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q; want %q", got, want)
		}
	}
}

func TestWeatherUSAlerts_NoActiveAlerts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	wa := NewWeatherUSAlerts()
	wa.nws.baseURL = srv.URL

	got := firstText(t, runTool(t, wa, map[string]any{"state": "WY"}))
	if got != "No active weather alerts for WY" {
		t.Errorf("output = %q; want no-alerts message", got)
	}
}

func TestWeatherUSAlerts_StateValidation(t *testing.T) {
	t.Parallel()

	schema := NewWeatherUSAlerts().Schema()
	for _, bad := range []string{"ca", "C", "CAL", "12"} {
		if _, err := schema.Validate(map[string]any{"state": bad}); err == nil {
			t.Errorf("state %q should fail validation", bad)
		}
	}
	if _, err := schema.Validate(map[string]any{"state": "NY"}); err != nil {
		t.Errorf("state NY should pass validation: %v", err)
	}
}

func TestFahrenheitToCelsius(t *testing.T) {
	t.Parallel()

	cases := []struct {
		f    int
		want float64
	}{
		{32, 0},
		{68, 20},
		{100, 37.8},
		{-40, -40},
	}
	for _, tc := range cases {
		if got := fahrenheitToCelsius(tc.f); got != tc.want {
			t.Errorf("fahrenheitToCelsius(%d) = %v; want %v", tc.f, got, tc.want)
		}
	}
}
