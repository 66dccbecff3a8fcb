package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maksimkurb/ipnorm/src/internal/log"
)

// CloseOrWarn closes c and logs a warning on failure.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}

// WriteFileAtomic writes the output of fill to a temporary file next to path
// and renames it over path once fill succeeds.
func WriteFileAtomic(path string, perm os.FileMode, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
