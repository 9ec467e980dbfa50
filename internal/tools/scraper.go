package tools

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// WebScraper fetches a page and extracts text matching a simple
// selector: a tag name, ".class", "#id", or a space-separated
// descendant chain of those.
type WebScraper struct {
	httpClient *http.Client
}

func NewWebScraper() *WebScraper {
	return &WebScraper{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (*WebScraper) Name() string { return "web_scraper_tool" }

func (*WebScraper) Description() string {
	return "Web scraping tool that extracts text content from web pages. " +
		"Supports various HTML parsing and extraction methods."
}

func (*WebScraper) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "url",
			Type:        tool.TypeString,
			Required:    true,
			Description: "URL of the webpage to scrape",
		},
		tool.Field{
			Name:        "selector",
			Type:        tool.TypeString,
			Default:     "body",
			Description: "CSS selector to extract specific content from the webpage. If you not sure what selector use - leave it empty and use default body",
		},
	)
}

func (t *WebScraper) Run(ctx context.Context, args tool.Args) []tool.Content {
	pageURL := args.String("url")
	selector := args.String("selector")
	if selector == "" {
		selector = "body"
	}
	if pageURL == "" {
		return tool.Textf("Error: URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return tool.Textf("Error fetching URL: %v", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return tool.Textf("Error fetching URL: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return tool.Textf("Error fetching URL: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return tool.Textf("Unexpected error: %v", err)
	}

	matches := selectNodes(doc, strings.Fields(selector))
	texts := make([]string, 0, len(matches))
	for _, node := range matches {
		if text := strings.TrimSpace(nodeText(node)); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return tool.Textf("No content found for selector '%s'", selector)
	}
	return tool.Textf("%s", strings.Join(texts, "\n\n"))
}

// selectNodes resolves a descendant chain of simple selectors against
// the parsed tree.
func selectNodes(root *html.Node, chain []string) []*html.Node {
	current := []*html.Node{root}
	for _, part := range chain {
		var next []*html.Node
		for _, node := range current {
			next = append(next, findMatches(node, part)...)
		}
		current = next
	}
	if len(chain) == 0 {
		return nil
	}
	return current
}

func findMatches(root *html.Node, selector string) []*html.Node {
	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && matchesSimple(n, selector) {
			matches = append(matches, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return matches
}

func matchesSimple(n *html.Node, selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return attrValue(n, "id") == selector[1:]
	case strings.HasPrefix(selector, "."):
		for _, class := range strings.Fields(attrValue(n, "class")) {
			if class == selector[1:] {
				return true
			}
		}
		return false
	default:
		return n.Data == selector
	}
}

func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
