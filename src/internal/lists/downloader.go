package lists

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/hashing"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches a single URL source into the downloaded lists directory.
// Returns (changed, error) where changed indicates if the file was updated.
func Download(src *config.Source, cfg *config.Config) (bool, error) {
	if src.URL == "" {
		return false, errors.NewSourceError(fmt.Sprintf("source %q has no URL configured", src.Name), nil)
	}

	listsDir := cfg.GetAbsDownloadedListsDir()
	if err := os.MkdirAll(listsDir, 0755); err != nil {
		return false, errors.NewSourceError("failed to create downloaded lists directory", err)
	}

	log.Infof("Downloading source \"%s\" from URL: %s", src.Name, src.URL)

	resp, err := httpClient.Get(src.URL)
	if err != nil {
		return false, errors.NewSourceError(fmt.Sprintf("failed to download source %q", src.Name), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, errors.NewSourceError(fmt.Sprintf("failed to download source %q: %s", src.Name, resp.Status), nil)
	}

	bodyProxy := hashing.NewMD5ReaderProxy(resp.Body)
	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return false, errors.NewSourceError(fmt.Sprintf("failed to read response for source %q", src.Name), err)
	}

	filePath, err := src.GetAbsolutePath(cfg)
	if err != nil {
		return false, err
	}

	if changed, err := hashing.IsFileChanged(bodyProxy, filePath); err != nil {
		log.Errorf("Failed to calculate source \"%s\" checksum: %v", src.Name, err)
	} else if !changed {
		log.Infof("Source \"%s\" is not changed, skipping write to disk", src.Name)
		return false, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return false, errors.NewSourceError(fmt.Sprintf("failed to write source file to %s", filePath), err)
	}
	if err := hashing.WriteChecksum(bodyProxy, filePath); err != nil {
		return false, errors.NewSourceError("failed to write source checksum", err)
	}

	log.Infof("Source \"%s\" downloaded successfully (%d bytes)", src.Name, len(content))
	return true, nil
}

// DownloadAll downloads every URL source. Failures are logged and the rest
// continue; the number of failed sources is returned as an error.
func DownloadAll(cfg *config.Config) (updated int, err error) {
	failed := 0
	for _, src := range cfg.Sources {
		if src.URL == "" {
			continue
		}

		changed, err := Download(src, cfg)
		if err != nil {
			log.Errorf("Error downloading source \"%s\": %v", src.Name, err)
			failed++
			continue
		}
		if changed {
			updated++
		}
	}

	if failed > 0 {
		return updated, errors.NewSourceError(fmt.Sprintf("%d source(s) failed to download", failed), nil)
	}
	return updated, nil
}
