package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

const braveAPIBase = "https://api.search.brave.com/res/v1"

// braveClient is the shared transport for both Brave search tools: it
// spaces requests through a rate limiter and retries once on a 429
// honoring Retry-After.
type braveClient struct {
	baseURL    string
	limiter    *tool.RateLimiter
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

func newBraveClient(interval time.Duration) *braveClient {
	return &braveClient{
		baseURL:    braveAPIBase,
		limiter:    tool.NewRateLimiter(interval),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      sleepFor,
	}
}

func sleepFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type braveAPIError struct {
	Status int
	Body   string
}

func (e *braveAPIError) Error() string {
	return fmt.Sprintf("Brave API error: %d %s", e.Status, e.Body)
}

// get issues a rate-limited GET against path with the subscription
// token. One retry on 429, waiting out the server's Retry-After.
func (c *braveClient) get(ctx context.Context, apiKey, path string, params url.Values, out any) error {
	retried := false
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Accept-Encoding", "gzip")
		req.Header.Set("X-Subscription-Token", apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests && !retried {
			retryAfter := 1
			if v, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && v > 0 {
				retryAfter = v
			}
			resp.Body.Close() //nolint:errcheck
			if err := c.sleep(ctx, time.Duration(retryAfter)*time.Second); err != nil {
				return err
			}
			retried = true
			continue
		}

		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return &braveAPIError{Status: resp.StatusCode, Body: string(body)}
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
}

type braveWebResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type braveWebResponse struct {
	Web struct {
		Results []braveWebResult `json:"results"`
	} `json:"web"`
	Locations struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	} `json:"locations"`
}

func formatBraveWebResults(results []braveWebResult) []tool.Content {
	out := make([]tool.Content, 0, len(results))
	for _, r := range results {
		out = append(out, tool.Textf("Title: %s\nDescription: %s\nURL: %s",
			r.Title, r.Description, r.URL)...)
	}
	return out
}

// braveError maps a transport failure to result content: API errors
// carry their upstream status, everything else degrades to text.
func braveError(err error) []tool.Content {
	if apiErr, ok := err.(*braveAPIError); ok {
		return tool.Errorf(apiErr.Status, "%s", apiErr.Error())
	}
	return tool.Textf("Error: %v", err)
}
