// Package httpcache is a directory-backed HTTP GET cache with a fixed
// expiry. Forecast tools use it to avoid redundant upstream calls
// within the expiry window; entries survive process restarts.
package httpcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client wraps an http.Client with a file-per-URL response cache.
type Client struct {
	dir  string
	ttl  time.Duration
	http *http.Client
}

// New creates a cache rooted at dir; responses older than ttl are
// refetched. The directory is created on first use.
func New(dir string, ttl time.Duration) *Client {
	return &Client{
		dir:  dir,
		ttl:  ttl,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get returns the response body for url, from cache when fresh.
// Only 2xx responses are cached; anything else is an error carrying the
// upstream status code.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	path := c.entryPath(url)

	if body, ok := c.readFresh(path); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("httpcache: build request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpcache: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpcache: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	c.store(path, body)
	return body, nil
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

func (c *Client) entryPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

func (c *Client) readFresh(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

// store is best-effort: a failed cache write never fails the request.
func (c *Client) store(path string, body []byte) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}
