package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

const braveWebBody = `{"web":{"results":[
	{"title":"Go","description":"The Go website","url":"https://go.dev"},
	{"title":"Go docs","description":"Documentation","url":"https://go.dev/doc"}
]}}`

// withBraveKey injects the per-call credential override.
func withBraveKey(raw map[string]any) map[string]any {
	raw["env_vars"] = map[string]any{"BRAVE_API_KEY": "test-key"}
	return raw
}

func newBraveWebSearchForTest(t *testing.T, handler http.HandlerFunc) *BraveWebSearch {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ws := NewBraveWebSearch(0)
	ws.client.baseURL = srv.URL
	return ws
}

func TestBraveWebSearch_FormatsResults(t *testing.T) {
	t.Parallel()

	var gotToken, gotQuery, gotCount string
	ws := newBraveWebSearchForTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(braveWebBody)) //nolint:errcheck
	})

	items := runTool(t, ws, withBraveKey(map[string]any{"query": "golang"}))
	if gotToken != "test-key" {
		t.Errorf("token = %q; want test-key", gotToken)
	}
	if gotQuery != "golang" || gotCount != "10" {
		t.Errorf("query/count = %q/%q; want golang/10", gotQuery, gotCount)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d; want 2", len(items))
	}
	first := items[0].(tool.TextContent).Text
	if first != "Title: Go\nDescription: The Go website\nURL: https://go.dev" {
		t.Errorf("first = %q; want formatted result", first)
	}
}

func TestBraveWebSearch_MissingAPIKey(t *testing.T) {
	t.Setenv("BRAVE_API_KEY", "")

	got := firstText(t, runTool(t, NewBraveWebSearch(0), map[string]any{"query": "golang"}))
	if got != "Missing required BRAVE_API_KEY environment variables" {
		t.Errorf("output = %q; want missing key message", got)
	}
}

func TestBraveWebSearch_APIErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	ws := newBraveWebSearchForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "subscription expired", http.StatusUnprocessableEntity)
	})

	items := runTool(t, ws, withBraveKey(map[string]any{"query": "golang"}))
	errItem, ok := items[0].(tool.ErrorContent)
	if !ok {
		t.Fatalf("items[0] is %T; want ErrorContent", items[0])
	}
	if errItem.Code != http.StatusUnprocessableEntity {
		t.Errorf("Code = %d; want 422", errItem.Code)
	}
	if !strings.Contains(errItem.Error, "Brave API error: 422") {
		t.Errorf("Error = %q; want upstream status", errItem.Error)
	}
}

func TestBraveWebSearch_RetriesOnceOn429(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ws := newBraveWebSearchForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "3")
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(braveWebBody)) //nolint:errcheck
	})

	var slept time.Duration
	ws.client.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}

	items := runTool(t, ws, withBraveKey(map[string]any{"query": "golang"}))
	if hits.Load() != 2 {
		t.Errorf("hits = %d; want retry after 429", hits.Load())
	}
	if slept != 3*time.Second {
		t.Errorf("slept = %v; want Retry-After honored", slept)
	}
	if tool.IsError(items) {
		t.Errorf("items = %#v; want success after retry", items)
	}
}

func TestBraveWebSearch_SecondRateLimitFails(t *testing.T) {
	t.Parallel()

	ws := newBraveWebSearchForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	ws.client.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	items := runTool(t, ws, withBraveKey(map[string]any{"query": "golang"}))
	errItem, ok := items[0].(tool.ErrorContent)
	if !ok || errItem.Code != http.StatusTooManyRequests {
		t.Errorf("items[0] = %#v; want 429 error after single retry", items[0])
	}
}

func TestBraveClient_RateLimiterSpacesRequests(t *testing.T) {
	t.Parallel()

	client := newBraveClient(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	client.baseURL = srv.URL

	start := time.Now()
	for i := 0; i < 3; i++ {
		var out map[string]any
		if err := client.get(context.Background(), "k", "/web/search", nil, &out); err != nil {
			t.Fatalf("get %d returned error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*time.Second {
		t.Errorf("elapsed = %v; want at least 2s for three spaced calls", elapsed)
	}
}

func TestBraveLocalSearch_POIFlow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/search":
			w.Write([]byte(`{"locations":{"results":[{"id":"poi-1"}]}}`)) //nolint:errcheck
		case "/local/pois":
			if got := r.URL.Query()["ids"]; len(got) != 1 || got[0] != "poi-1" {
				t.Errorf("ids = %v; want [poi-1]", got)
			}
			//nolint:errcheck
			w.Write([]byte(`{"results":[{
				"id":"poi-1","name":"Tony's Pizza","phone":"555-0100",
				"address":{"streetAddress":"1 Main St","addressLocality":"Springfield"},
				"rating":{"ratingValue":4.5,"ratingCount":120},
				"priceRange":"$$","openingHours":["Mo-Fr 11:00-22:00"]
			}]}`))
		case "/local/descriptions":
			w.Write([]byte(`{"descriptions":{"poi-1":"Neighborhood pizzeria."}}`)) //nolint:errcheck
		default:
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)

	ls := NewBraveLocalSearch(0)
	ls.client.baseURL = srv.URL

	got := firstText(t, runTool(t, ls, withBraveKey(map[string]any{"query": "pizza near me"})))
	for _, want := range []string{
		"Name: Tony's Pizza",
		"Address: 1 Main St, Springfield",
		"Phone: 555-0100",
		"Rating: 4.5 (120 reviews)",
		"Price Range: $$",
		"Hours: Mo-Fr 11:00-22:00",
		"Description: Neighborhood pizzeria.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q; want %q", got, want)
		}
	}
}

func TestBraveLocalSearch_WebFallback(t *testing.T) {
	t.Parallel()

	var webSearches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if webSearches.Add(1) == 1 {
			// Locations query comes first and finds nothing.
			w.Write([]byte(`{"locations":{"results":[]}}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(braveWebBody)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	ls := NewBraveLocalSearch(0)
	ls.client.baseURL = srv.URL

	items := runTool(t, ls, withBraveKey(map[string]any{"query": "pizza near me"}))
	if webSearches.Load() != 2 {
		t.Errorf("web searches = %d; want locations query plus fallback", webSearches.Load())
	}
	if len(items) != 2 || !strings.Contains(items[0].(tool.TextContent).Text, "Title: Go") {
		t.Errorf("items = %#v; want web results from fallback", items)
	}
}

func TestBraveLocalSearch_DefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/search":
			w.Write([]byte(`{"locations":{"results":[{"id":"poi-2"}]}}`)) //nolint:errcheck
		case "/local/pois":
			w.Write([]byte(`{"results":[{"id":"poi-2"}]}`)) //nolint:errcheck
		case "/local/descriptions":
			w.Write([]byte(`{"descriptions":{}}`)) //nolint:errcheck
		}
	}))
	t.Cleanup(srv.Close)

	ls := NewBraveLocalSearch(0)
	ls.client.baseURL = srv.URL

	got := firstText(t, runTool(t, ls, withBraveKey(map[string]any{"query": "pizza"})))
	for _, want := range []string{"Name: N/A", "Address: N/A", "Phone: N/A", "Description: No description available"} {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q; want %q", got, want)
		}
	}
}
