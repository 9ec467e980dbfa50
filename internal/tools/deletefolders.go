package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// DeleteFolders removes directories, optionally recursively.
type DeleteFolders struct{}

func NewDeleteFolders() *DeleteFolders { return &DeleteFolders{} }

func (*DeleteFolders) Name() string { return "os_delete_folders_tool" }

func (*DeleteFolders) Description() string {
	return "Deletes folders at specified paths, with options for recursive deletion. " +
		"Accepts a list of folder paths and removes each folder. " +
		"Supports both absolute and relative paths. " +
		"Returns status messages for each folder deletion attempt. " +
		"Provides safety checks to prevent accidental deletion of root or system directories."
}

func (*DeleteFolders) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "folder_paths",
			Type:        tool.TypeStringList,
			Required:    true,
			Description: "List of folder paths to delete",
		},
		tool.Field{
			Name:        "force",
			Type:        tool.TypeBoolean,
			Default:     false,
			Description: "If true, force deletion even if folder is not empty",
		},
	)
}

// isSafeToDelete rejects root, home, and other critical system prefixes.
func isSafeToDelete(absPath string) bool {
	unsafe := []string{"/", "/home", "/etc", "/usr", "/var", "/bin", "/sbin"}
	if home, err := os.UserHomeDir(); err == nil {
		unsafe = append(unsafe, home)
	}
	for _, prefix := range unsafe {
		if absPath == prefix || strings.HasPrefix(absPath, prefix+string(filepath.Separator)) {
			if prefix == "/" {
				// Everything is under "/"; only the root itself is unsafe.
				if absPath == "/" {
					return false
				}
				continue
			}
			return false
		}
	}
	return true
}

func (*DeleteFolders) Run(_ context.Context, args tool.Args) []tool.Content {
	paths := args.StringSlice("folder_paths")
	force := args.Bool("force")

	if len(paths) == 0 {
		return tool.Textf("No folder paths provided")
	}

	results := make([]string, 0, len(paths))
	for _, path := range paths {
		absolute, err := filepath.Abs(filepath.Clean(path))
		if err != nil {
			results = append(results, fmt.Sprintf("Error deleting folder %s: %v", path, err))
			continue
		}

		if !isSafeToDelete(absolute) {
			results = append(results, fmt.Sprintf("Unsafe deletion prevented for path: %s", path))
			continue
		}

		info, err := os.Stat(absolute)
		if os.IsNotExist(err) {
			results = append(results, fmt.Sprintf("Path does not exist: %s", path))
			continue
		}
		if err != nil {
			results = append(results, fmt.Sprintf("Error deleting folder %s: %v", path, err))
			continue
		}
		if !info.IsDir() {
			results = append(results, fmt.Sprintf("Path is not a directory: %s", path))
			continue
		}

		if force {
			if err := os.RemoveAll(absolute); err != nil {
				results = append(results, deleteErrorLine(path, err))
				continue
			}
			results = append(results, fmt.Sprintf("Forcefully deleted folder: %s", path))
			continue
		}

		entries, err := os.ReadDir(absolute)
		if err != nil {
			results = append(results, deleteErrorLine(path, err))
			continue
		}
		if len(entries) > 0 {
			results = append(results, fmt.Sprintf(
				"Folder not empty, deletion skipped: %s. Use 'force=true' to delete non-empty folders.", path))
			continue
		}
		if err := os.Remove(absolute); err != nil {
			results = append(results, deleteErrorLine(path, err))
			continue
		}
		results = append(results, fmt.Sprintf("Successfully deleted empty folder: %s", path))
	}

	return tool.Textf("%s", strings.Join(results, "\n"))
}

func deleteErrorLine(path string, err error) string {
	if os.IsPermission(err) {
		return fmt.Sprintf("Permission denied: Unable to delete folder %s", path)
	}
	return fmt.Sprintf("Error deleting folder %s: %v", path, err)
}
