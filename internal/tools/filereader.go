package tools

import (
	"context"
	"encoding/json"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// ignoreNames are directory and file names never worth reading.
var ignoreNames = map[string]struct{}{
	".git": {}, ".svn": {}, ".hg": {}, ".DS_Store": {}, ".env": {},
	".idea": {}, ".vscode": {}, ".settings": {},
	"node_modules": {}, "__pycache__": {}, "build": {}, "dist": {},
	"venv": {}, "env": {}, "bin": {}, "obj": {}, "target": {}, "out": {},
	"coverage": {},
}

// ignoreExts are extensions of binary, media, and archive files.
var ignoreExts = map[string]struct{}{
	".pyc": {}, ".so": {}, ".dll": {}, ".dylib": {}, ".exe": {}, ".bin": {},
	".dat": {}, ".db": {}, ".sqlite": {}, ".sqlite3": {}, ".o": {}, ".a": {},
	".class": {}, ".jar": {}, ".war": {}, ".apk": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {}, ".mkv": {},
	".webm": {}, ".webp": {}, ".svg": {}, ".ico": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {}, ".deb": {},
	".rpm": {}, ".bz2": {}, ".xz": {}, ".tgz": {},
	".log": {}, ".tmp": {}, ".swp": {}, ".bak": {}, ".old": {}, ".pid": {},
}

// FileContentReader reads text files and walks directories, skipping
// binary and commonly ignored paths.
type FileContentReader struct{}

func NewFileContentReader() *FileContentReader { return &FileContentReader{} }

func (*FileContentReader) Name() string { return "os_file_content_reader" }

func (*FileContentReader) Description() string {
	return "Reads and extracts content from files across various formats. " +
		"Skips binary and common ignore patterns. " +
		"Supports reading multiple files with configurable filtering."
}

func (*FileContentReader) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "file_paths",
			Type:        tool.TypeStringList,
			Required:    true,
			Description: "List of file paths to read",
		},
	)
}

func shouldSkip(path string, isFile bool) bool {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	if _, ok := ignoreNames[name]; ok {
		return true
	}
	if _, ok := ignoreExts[ext]; ok {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	if isFile && ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" && !strings.HasPrefix(mt, "text/") {
			return true
		}
	}
	return false
}

func readOneFile(path string) string {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "Error: File not found"
	}
	if err != nil {
		if os.IsPermission(err) {
			return "Error: Permission denied"
		}
		return "Error: " + err.Error()
	}
	if info.IsDir() {
		return "Error: Path is a directory"
	}
	if shouldSkip(path, true) {
		return "Skipped: Binary or ignored file type"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return "Error: Permission denied"
		}
		return "Error: " + err.Error()
	}
	if !utf8.Valid(data) {
		return "Error: Unable to decode file (likely binary)"
	}
	return string(data)
}

func readDirectory(root string, results map[string]string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkip(path, false) {
				return filepath.SkipDir
			}
			return nil
		}
		if !shouldSkip(path, true) {
			results[path] = readOneFile(path)
		}
		return nil
	})
	if err != nil {
		results[root] = "Error reading directory: " + err.Error()
	}
}

func (*FileContentReader) Run(_ context.Context, args tool.Args) []tool.Content {
	results := make(map[string]string)
	for _, path := range args.StringSlice("file_paths") {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			readDirectory(path, results)
			continue
		}
		results[path] = readOneFile(path)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return tool.Textf("Error: %v", err)
	}
	return tool.Textf("%s", out)
}
