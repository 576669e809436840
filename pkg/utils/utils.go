package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func MkPtr[T any](v T) *T {
	return &v
}

// expands a leading ~ and returns an absolute, cleaned path
func NormalizePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
