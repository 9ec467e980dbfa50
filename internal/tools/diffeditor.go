package tools

import (
	"context"
	"os"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// DiffEditor replaces the first occurrence of an exact snippet in a file.
type DiffEditor struct{}

func NewDiffEditor() *DiffEditor { return &DiffEditor{} }

func (*DiffEditor) Name() string { return "os_diff_editor_tool" }

func (*DiffEditor) Description() string {
	return "Performs a precise replacement of a given text snippet in a specified file.\n" +
		"It takes the following inputs:\n" +
		"- path: The path to the target file.\n" +
		"- old_text: The exact substring that should be replaced.\n" +
		"- new_text: The new substring that replaces the old one.\n\n" +
		"The tool will:\n" +
		"1. Read the file contents.\n" +
		"2. Search for `old_text` within the file.\n" +
		"3. If found, replace the first occurrence of `old_text` with `new_text`.\n" +
		"4. Write the modified content back to the file.\n" +
		"5. Return a success message if successful, or indicate that the old_text was not found."
}

func (*DiffEditor) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "path",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Path to the file to edit",
		},
		tool.Field{
			Name:        "old_text",
			Type:        tool.TypeString,
			Required:    true,
			Description: "Exact substring in the file to replace.",
		},
		tool.Field{
			Name:        "new_text",
			Type:        tool.TypeString,
			Required:    true,
			Description: "New substring that will replace old_text.",
		},
	)
}

func (*DiffEditor) Run(_ context.Context, args tool.Args) []tool.Content {
	path := args.String("path")
	oldText := args.String("old_text")
	newText := args.String("new_text")

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return tool.Textf("Error: File does not exist at path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tool.Textf("Error reading file %s: %v", path, err)
	}
	content := string(data)

	index := strings.Index(content, oldText)
	if index == -1 {
		return tool.Textf("'%s' not found in the file. No changes made.", oldText)
	}

	updated := content[:index] + newText + content[index+len(oldText):]
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return tool.Textf("Error writing updated content to file %s: %v", path, err)
	}

	return tool.Textf("Successfully replaced '%s' with '%s' in %s.", oldText, newText, path)
}
