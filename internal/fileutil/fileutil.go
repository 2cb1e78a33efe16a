// Package fileutil holds file output helpers shared by the export paths.
package fileutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownFilePath returns the markdown file path for a book title inside
// directory.
func MarkdownFilePath(title string, directory string) string {
	return filepath.Join(directory, SanitizeFilename(title)+".md")
}

// SanitizeFilename replaces characters that break file paths.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}

// FileExists reports whether a regular file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithOverwrite writes data to path, creating parent directories.
// When the file exists and overwrite is false it is left alone and false
// is returned.
func WriteFileWithOverwrite(path string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(path) && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

// WriteJSONFile marshals data with indentation and writes it to path,
// respecting the overwrite flag.
func WriteJSONFile(data any, path string, overwrite bool) (bool, error) {
	if FileExists(path) && !overwrite {
		slog.Info("JSON file already exists, skipping", "filename", path)
		return false, nil
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return WriteFileWithOverwrite(path, jsonData, 0644, true)
}
