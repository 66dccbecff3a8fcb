package hashing

import (
	"bytes"
	"errors"
	"os"
)

// SidecarPath returns the checksum file that accompanies path.
func SidecarPath(path string) string {
	return path + ".md5"
}

// IsFileChanged compares the checksum of freshly read data with the sidecar
// stored next to filePath. A missing file or an unreadable sidecar counts as
// changed.
func IsFileChanged(provider ChecksumProvider, filePath string) (bool, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	sum, err := provider.GetChecksum()
	if err != nil {
		return false, err
	}

	stored, err := os.ReadFile(SidecarPath(filePath))
	if err != nil {
		return true, nil
	}
	return string(bytes.TrimSpace(stored)) != sum, nil
}

// WriteChecksum stores the provider's checksum in the sidecar of filePath.
func WriteChecksum(provider ChecksumProvider, filePath string) error {
	sum, err := provider.GetChecksum()
	if err != nil {
		return err
	}
	return os.WriteFile(SidecarPath(filePath), []byte(sum), 0644)
}
