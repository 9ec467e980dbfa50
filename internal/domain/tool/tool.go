package tool

import "context"

// Tool is a single named capability. Implementations declare their
// metadata once at construction and keep no state between invocations
// beyond explicitly owned resources such as a rate limiter.
type Tool interface {
	Name() string
	Description() string
	Schema() Schema

	// Run executes the capability. It must not panic past the boundary
	// and must return at least one content item; internal failures are
	// degraded into TextContent or ErrorContent. Arguments have already
	// passed Schema.Validate.
	Run(ctx context.Context, args Args) []Content
}

// Descriptor is the static metadata of one tool, immutable after
// registration.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Describe builds the descriptor for a tool.
func Describe(t Tool) Descriptor {
	return Descriptor{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: t.Schema().JSONSchema(),
	}
}
