// Package fsutil provides utility functions and constants for file system operations.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all necessary parent directories with default permissions if they don't exist.
// It uses DirModeDefault (0755) permissions for the created directories.
// Returns an error if the directory cannot be created or if the path exists but is not a directory.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// EnsureDirs creates every slash-separated relative directory in dirs below root.
// Existing directories are left as they are.
func EnsureDirs(root string, dirs []string) error {
	for _, dir := range dirs {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if err := EnsureDir(path); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}
