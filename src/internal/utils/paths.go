package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputFile is used when neither the config nor the command line name an output.
const DefaultOutputFile = "processed_ips.txt"

// GetAbsolutePath returns path if it was absolute, otherwise joins it with baseDir
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(baseDir, path))
}

// ProcessedPath derives "<dir>/<base>_processed.txt" from an input file name.
func ProcessedPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_processed.txt"
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || err != nil {
		return false
	}
	return !info.IsDir()
}
