package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// WebBrowser opens URLs in the system's default browser.
type WebBrowser struct {
	// open is swappable so tests do not launch a real browser.
	open func(url string) error
}

func NewWebBrowser() *WebBrowser {
	return &WebBrowser{open: browser.OpenURL}
}

func (*WebBrowser) Name() string { return "web_browser_tool" }

func (*WebBrowser) Description() string {
	return "Opens URLs in the system's default web browser. " +
		"Accepts a single URL or a list of URLs. " +
		"Validates URL format and supports http/https protocols. " +
		"Returns feedback on which URLs were successfully opened."
}

func (*WebBrowser) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "urls",
			Type:        tool.TypeStringList,
			Required:    true,
			Description: "Single URL or list of URLs to open",
		},
	)
}

func validBrowserURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func (t *WebBrowser) Run(_ context.Context, args tool.Args) []tool.Content {
	urls := args.StringSlice("urls")

	results := make([]string, 0, len(urls))
	for _, u := range urls {
		if !validBrowserURL(u) {
			results = append(results, fmt.Sprintf("Failed to open %s: Invalid URL format", u))
			continue
		}
		if err := t.open(u); err != nil {
			results = append(results, fmt.Sprintf("Error opening %s: %v", u, err))
			continue
		}
		results = append(results, fmt.Sprintf("Successfully opened %s", u))
	}

	return tool.Textf("%s", strings.Join(results, "\n"))
}
