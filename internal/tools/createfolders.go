package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// CreateFolders creates directories, including missing parents.
type CreateFolders struct{}

func NewCreateFolders() *CreateFolders { return &CreateFolders{} }

func (*CreateFolders) Name() string { return "os_create_folders_tool" }

func (*CreateFolders) Description() string {
	return "Creates new folders at specified paths, including nested directories if needed. " +
		"Accepts a list of folder paths and creates each folder along with any necessary parent directories. " +
		"Supports both absolute and relative paths. " +
		"Returns status messages for each folder creation attempt."
}

func (*CreateFolders) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "folder_paths",
			Type:        tool.TypeStringList,
			Required:    true,
			Description: "List of folder paths to create",
		},
	)
}

// disallowedPathChars mirrors the characters rejected on creation so
// paths stay portable across filesystems.
const disallowedPathChars = `<>:"|?*`

func (*CreateFolders) Run(_ context.Context, args tool.Args) []tool.Content {
	paths := args.StringSlice("folder_paths")
	if len(paths) == 0 {
		return tool.Textf("No folder paths provided")
	}

	results := make([]string, 0, len(paths))
	for _, path := range paths {
		absolute, err := filepath.Abs(filepath.Clean(path))
		if err != nil {
			results = append(results, fmt.Sprintf("Error creating folder %s: %v", path, err))
			continue
		}

		if strings.ContainsAny(absolute, disallowedPathChars) {
			results = append(results, fmt.Sprintf("Invalid characters in path: %s", path))
			continue
		}

		if err := os.MkdirAll(absolute, 0o755); err != nil {
			if os.IsPermission(err) {
				results = append(results, fmt.Sprintf("Permission denied: Unable to create folder %s", path))
			} else {
				results = append(results, fmt.Sprintf("Error creating folder %s: %v", path, err))
			}
			continue
		}
		results = append(results, fmt.Sprintf("Successfully created folder: %s", path))
	}

	return tool.Textf("%s", strings.Join(results, "\n"))
}
