// Package mcpserver exposes the tool registry over the Model Context
// Protocol on stdio, so MCP clients can list and invoke the same tools
// the HTTP API serves.
package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/version"
)

// Server adapts the registry to an MCP stdio server.
type Server struct {
	registry *tool.Registry
	log      zerolog.Logger
}

func New(registry *tool.Registry, log zerolog.Logger) *Server {
	return &Server{registry: registry, log: log}
}

// Run serves MCP over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "agenttools",
		Version: version.Version,
	}, nil)

	for _, desc := range s.registry.List() {
		schema, err := toJSONSchema(desc.InputSchema)
		if err != nil {
			return fmt.Errorf("mcpserver: schema for %s: %w", desc.Name, err)
		}
		srv.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: schema,
		}, s.handlerFor(desc.Name))
	}

	s.log.Info().Int("tools", len(s.registry.List())).Msg("starting MCP stdio server")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// handlerFor binds one registered tool to an MCP call handler.
func (s *Server) handlerFor(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &raw); err != nil {
				return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}

		items, err := s.registry.Invoke(ctx, name, raw)
		if err != nil {
			// Validation and lookup failures surface as isError results,
			// not protocol errors.
			return errorResult(err.Error()), nil
		}
		return toCallResult(items), nil
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}

// toCallResult maps the content union onto MCP content types. Error
// items set the result's error flag and degrade to text.
func toCallResult(items []tool.Content) *mcp.CallToolResult {
	result := &mcp.CallToolResult{IsError: tool.IsError(items)}
	for _, item := range items {
		switch c := item.(type) {
		case tool.TextContent:
			result.Content = append(result.Content, &mcp.TextContent{Text: c.Text})
		case tool.ImageContent:
			// Tool images are base64 strings; the SDK wants raw bytes and
			// re-encodes on the wire.
			decoded, err := base64.StdEncoding.DecodeString(c.Data)
			if err != nil {
				result.Content = append(result.Content, &mcp.TextContent{
					Text: fmt.Sprintf("error: undecodable image content: %v", err),
				})
				continue
			}
			result.Content = append(result.Content, &mcp.ImageContent{
				Data:     decoded,
				MIMEType: c.MIMEType,
			})
		case tool.ErrorContent:
			result.Content = append(result.Content, &mcp.TextContent{
				Text: fmt.Sprintf("error %d: %s", c.Code, c.Error),
			})
		}
	}
	return result
}

// toJSONSchema converts the descriptor's schema document into the
// SDK's schema type.
func toJSONSchema(doc map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
