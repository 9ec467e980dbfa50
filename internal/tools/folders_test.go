package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateFolders_CreatesNestedPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	got := firstText(t, runTool(t, NewCreateFolders(), map[string]any{
		"folder_paths": []any{nested},
	}))
	if got != "Successfully created folder: "+nested {
		t.Errorf("output = %q; want success line", got)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Errorf("nested path not created: %v", err)
	}
}

func TestCreateFolders_BatchKeepsOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "ok")
	bad := filepath.Join(dir, `inva|id`)

	got := firstText(t, runTool(t, NewCreateFolders(), map[string]any{
		"folder_paths": []any{good, bad},
	}))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d; want 2", len(lines))
	}
	if lines[0] != "Successfully created folder: "+good {
		t.Errorf("lines[0] = %q; want success for %s", lines[0], good)
	}
	if lines[1] != "Invalid characters in path: "+bad {
		t.Errorf("lines[1] = %q; want invalid characters for %s", lines[1], bad)
	}
}

func TestCreateFolders_EmptyList(t *testing.T) {
	t.Parallel()

	got := firstText(t, runTool(t, NewCreateFolders(), map[string]any{
		"folder_paths": []any{},
	}))
	if got != "No folder paths provided" {
		t.Errorf("output = %q; want empty-list message", got)
	}
}

func TestDeleteFolders_EmptyFolder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "empty")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := firstText(t, runTool(t, NewDeleteFolders(), map[string]any{
		"folder_paths": []any{target},
	}))
	if got != "Successfully deleted empty folder: "+target {
		t.Errorf("output = %q; want success line", got)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("folder should be gone")
	}
}

func TestDeleteFolders_NonEmptyRequiresForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "full")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := firstText(t, runTool(t, NewDeleteFolders(), map[string]any{
		"folder_paths": []any{target},
	}))
	want := "Folder not empty, deletion skipped: " + target + ". Use 'force=true' to delete non-empty folders."
	if got != want {
		t.Errorf("output = %q; want skip message", got)
	}
	if _, err := os.Stat(target); err != nil {
		t.Error("folder should still exist without force")
	}

	got = firstText(t, runTool(t, NewDeleteFolders(), map[string]any{
		"folder_paths": []any{target},
		"force":        true,
	}))
	if got != "Forcefully deleted folder: "+target {
		t.Errorf("output = %q; want forceful delete line", got)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("folder should be gone after force")
	}
}

func TestDeleteFolders_MissingAndFilePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "never-existed")
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got := firstText(t, runTool(t, NewDeleteFolders(), map[string]any{
		"folder_paths": []any{missing, file},
	}))
	lines := strings.Split(got, "\n")
	if lines[0] != "Path does not exist: "+missing {
		t.Errorf("lines[0] = %q; want missing path message", lines[0])
	}
	if lines[1] != "Path is not a directory: "+file {
		t.Errorf("lines[1] = %q; want not-a-directory message", lines[1])
	}
}

func TestDeleteFolders_RefusesSystemPaths(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/", "/etc", "/usr/lib"} {
		got := firstText(t, runTool(t, NewDeleteFolders(), map[string]any{
			"folder_paths": []any{path},
		}))
		if got != "Unsafe deletion prevented for path: "+path {
			t.Errorf("output for %s = %q; want unsafe message", path, got)
		}
	}
}

func TestIsSafeToDelete(t *testing.T) {
	t.Parallel()

	if isSafeToDelete("/") {
		t.Error("root should be unsafe")
	}
	if isSafeToDelete("/etc/nginx") {
		t.Error("paths under /etc should be unsafe")
	}
	if !isSafeToDelete("/tmp/scratch") {
		t.Error("/tmp/scratch should be safe")
	}
}
