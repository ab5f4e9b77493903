package fsutil

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.FileSystemError(err, "mkdir", filepath.Dir(path)).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError(err, "write", path).Build()
	}
	return nil
}

// RemoveAll removes path and anything below it. A missing path is not an error.
func RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.FileSystemError(err, "remove", path).Build()
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReplaceExt swaps the extension of path for ext (including the dot).
func ReplaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
