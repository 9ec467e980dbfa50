package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// FileCreator writes one or more new files, creating parent directories.
type FileCreator struct{}

func NewFileCreator() *FileCreator { return &FileCreator{} }

func (*FileCreator) Name() string { return "os_file_creator" }

func (*FileCreator) Description() string {
	return "OS File Creator: A versatile tool for creating files with flexible options.\n\n" +
		"Key Features:\n" +
		"- Create single or multiple files in one operation\n" +
		"- Automatically create parent directories\n" +
		"- Support for text and binary file creation\n" +
		"- Handles JSON content seamlessly\n\n" +
		"Accepts 'files' as a single object or a list of objects, each with " +
		"'path' and 'content', plus optional 'binary' and 'encoding' fields."
}

func (*FileCreator) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "files",
			Type:        tool.TypeAny,
			Required:    true,
			Description: "File(s) to create: an object or list of objects with 'path' and 'content'",
		},
	)
}

type fileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Binary  bool   `json:"binary"`
}

type fileResult struct {
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Size    int64  `json:"size,omitempty"`
	Error   string `json:"error,omitempty"`
}

// decodeFileEntries accepts a single entry object or a list of them.
func decodeFileEntries(raw any) ([]fileEntry, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var one fileEntry
	if err := json.Unmarshal(data, &one); err == nil && one.Path != "" {
		return []fileEntry{one}, nil
	}
	var many []fileEntry
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("files must be an object or a list of objects with 'path' and 'content'")
	}
	return many, nil
}

func (*FileCreator) Run(_ context.Context, args tool.Args) []tool.Content {
	entries, err := decodeFileEntries(args.Value("files"))
	if err != nil {
		return tool.Textf("Error: %v", err)
	}

	results := make([]fileResult, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Clean(entry.Path)
		if _, err := os.Stat(path); err == nil {
			return tool.Textf("File %s already exists.", path)
		}

		if err := writeNewFile(path, entry); err != nil {
			results = append(results, fileResult{Path: path, Error: err.Error()})
			continue
		}

		info, err := os.Stat(path)
		var size int64
		if err == nil {
			size = info.Size()
		}
		results = append(results, fileResult{Path: path, Success: true, Size: size})
	}

	created, failed := 0, 0
	for _, r := range results {
		if r.Success {
			created++
		} else {
			failed++
		}
	}

	summary, err := json.MarshalIndent(map[string]any{
		"created_files": created,
		"failed_files":  failed,
		"results":       results,
	}, "", "  ")
	if err != nil {
		return tool.Textf("Error: %v", err)
	}
	return tool.Textf("%s", summary)
}

func writeNewFile(path string, entry fileEntry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(entry.Content), 0o644)
}
