package tools

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// FileEdit rewrites a file fully, by line range, or by regex replace.
type FileEdit struct{}

func NewFileEdit() *FileEdit { return &FileEdit{} }

func (*FileEdit) Name() string { return "os_file_edit_tool" }

func (*FileEdit) Description() string {
	return "A tool for editing file contents with support for:\n" +
		"- Full file content replacement\n" +
		"- Partial content editing by line numbers\n" +
		"- Pattern-based text search and replace\n" +
		"- Multiple file type support\n" +
		"- Error handling for file operations"
}

func (*FileEdit) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "file_path",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Path to the file to edit",
		},
		tool.Field{
			Name:        "edit_type",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Type of edit operation",
			Enum:        []string{"full", "partial"},
			Examples:    []any{"full", "partial"},
		},
		tool.Field{
			Name:        "new_content",
			Type:        tool.TypeString,
			Required:    true,
			Description: "New content to write",
		},
		tool.Field{
			Name:        "start_line",
			Type:        tool.TypeInteger,
			Description: "Starting line number for partial edits",
		},
		tool.Field{
			Name:        "end_line",
			Type:        tool.TypeInteger,
			Description: "Ending line number for partial edits",
		},
		tool.Field{
			Name:        "search_pattern",
			Type:        tool.TypeString,
			Description: "Pattern to search for in partial edits",
		},
		tool.Field{
			Name:        "replacement_text",
			Type:        tool.TypeString,
			Description: "Text to replace matched patterns",
		},
	)
}

func (*FileEdit) Run(_ context.Context, args tool.Args) []tool.Content {
	filePath := args.String("file_path")
	editType := args.String("edit_type")
	newContent := args.String("new_content")

	if filePath == "" {
		return tool.Textf("Error: File path is required.")
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return tool.Textf("File not found: %s", filePath)
	}
	if editType == "" {
		return tool.Textf("Error: Edit type is required.")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return tool.Textf("Error editing file: %v", err)
	}
	original := string(data)

	var updated string
	switch editType {
	case "full":
		updated = newContent
	default:
		startLine, hasStart := args.IntOk("start_line")
		endLine, hasEnd := args.IntOk("end_line")
		pattern := args.String("search_pattern")
		replacement := args.String("replacement_text")

		switch {
		case hasStart && hasEnd:
			updated, err = editByLines(original, startLine, endLine, newContent)
			if err != nil {
				return tool.Textf("Error editing file: %v", err)
			}
		case pattern != "" && replacement != "":
			re, reErr := regexp.Compile(pattern)
			if reErr != nil {
				return tool.Textf("Invalid regular expression pattern: %v", reErr)
			}
			updated = re.ReplaceAllString(original, replacement)
		default:
			return tool.Textf("Error editing file: invalid partial edit parameters")
		}
	}

	if err := os.WriteFile(filePath, []byte(updated), 0o644); err != nil {
		return tool.Textf("Error editing file: %v", err)
	}
	return tool.Textf("File successfully updated: %s\n%s", filePath, updated)
}

func editByLines(content string, startLine, endLine int, newContent string) (string, error) {
	lines := strings.Split(content, "\n")
	// Split leaves a trailing empty element when the file ends with a newline.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if startLine < 1 || endLine > len(lines) || startLine > endLine {
		return "", errInvalidLineNumbers
	}

	replacement := strings.Split(newContent, "\n")
	merged := make([]string, 0, len(lines)-(endLine-startLine+1)+len(replacement))
	merged = append(merged, lines[:startLine-1]...)
	merged = append(merged, replacement...)
	merged = append(merged, lines[endLine:]...)
	return strings.Join(merged, "\n"), nil
}

var errInvalidLineNumbers = errors.New("invalid line numbers")
