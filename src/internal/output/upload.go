package output

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/collector"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

const (
	uploadTimeout   = 10 * time.Second
	uploadUserAgent = "ipnorm/1.0"
	maxErrorBody    = 4 << 10
)

// Upload posts the result as "ip:port#tag" lines, one per line, and returns the
// number of endpoints sent. An empty result is not sent.
func Upload(ctx context.Context, url, token, defaultTag string, result *collector.Result) (int, error) {
	lines := UploadLines(result, defaultTag)
	if len(lines) == 0 {
		log.Warnf("No endpoints to upload, skipping")
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		return 0, errors.NewOutputError("failed to create upload request", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("User-Agent", uploadUserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, errors.NewOutputError("upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return 0, errors.NewOutputError(fmt.Sprintf("upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	log.Infof("Uploaded %d endpoints to %s", len(lines), url)
	return len(lines), nil
}
