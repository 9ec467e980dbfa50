// Package tool defines the invocation contract every tool in this
// repository adheres to: static metadata, a declared input schema,
// and an execution entry point returning a sequence of typed content items.
package tool

import (
	"encoding/json"
	"fmt"
)

// Content kind tags. The set is closed: adding a new kind is a
// deliberate contract change, not ad hoc duck typing.
const (
	ContentKindText  = "text"
	ContentKindImage = "image"
	ContentKindError = "error"
)

// Content is one unit of a tool's output. Every implementation carries
// an explicit kind tag so callers can discriminate without probing
// field presence.
type Content interface {
	Kind() string
}

// TextContent is a plain text result item.
type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) Kind() string { return ContentKindText }

// ImageContent is a base64-encoded image result item.
type ImageContent struct {
	Data     string `json:"image"`
	MIMEType string `json:"mime_type"`
}

func (ImageContent) Kind() string { return ContentKindImage }

// ErrorContent is a structured failure result item. Code follows HTTP
// status semantics where the failure came from an upstream API.
type ErrorContent struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func (ErrorContent) Kind() string { return ContentKindError }

// Textf builds a single-item text result. Most tools return their
// output, success or failure, through this helper.
func Textf(format string, args ...any) []Content {
	return []Content{TextContent{Text: fmt.Sprintf(format, args...)}}
}

// Errorf builds a single-item structured error result.
func Errorf(code int, format string, args ...any) []Content {
	return []Content{ErrorContent{Code: code, Error: fmt.Sprintf(format, args...)}}
}

// taggedContent is the wire shape for a content item: the variant
// fields plus an explicit "type" tag.
type taggedContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"image,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Code     int    `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MarshalContent serializes a content sequence as a tagged-union JSON array.
func MarshalContent(items []Content) ([]byte, error) {
	out := make([]taggedContent, 0, len(items))
	for _, item := range items {
		switch c := item.(type) {
		case TextContent:
			out = append(out, taggedContent{Type: ContentKindText, Text: c.Text})
		case ImageContent:
			out = append(out, taggedContent{Type: ContentKindImage, Data: c.Data, MIMEType: c.MIMEType})
		case ErrorContent:
			out = append(out, taggedContent{Type: ContentKindError, Code: c.Code, Error: c.Error})
		default:
			return nil, fmt.Errorf("unknown content kind %q", item.Kind())
		}
	}
	return json.Marshal(out)
}

// UnmarshalContent parses a tagged-union JSON array back into content items.
func UnmarshalContent(data []byte) ([]Content, error) {
	var raw []taggedContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	items := make([]Content, 0, len(raw))
	for _, entry := range raw {
		switch entry.Type {
		case ContentKindText:
			items = append(items, TextContent{Text: entry.Text})
		case ContentKindImage:
			items = append(items, ImageContent{Data: entry.Data, MIMEType: entry.MIMEType})
		case ContentKindError:
			items = append(items, ErrorContent{Code: entry.Code, Error: entry.Error})
		default:
			return nil, fmt.Errorf("content: unknown type tag %q", entry.Type)
		}
	}
	return items, nil
}

// IsError reports whether the sequence signals a failure. Per contract
// an error item is always the sole or leading item.
func IsError(items []Content) bool {
	if len(items) == 0 {
		return false
	}
	_, ok := items[0].(ErrorContent)
	return ok
}
