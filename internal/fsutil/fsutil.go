// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
)

// FirstFile returns the first candidate that names an existing regular file.
func FirstFile(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if IsFile(c) {
			return c, true
		}
	}
	return "", false
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Canonical returns the absolute, symlink-resolved form of path. It falls
// back to the absolute or cleaned path when resolution fails.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
