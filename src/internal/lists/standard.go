package lists

import (
	"strings"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
)

const (
	standardSampleSize = 10
	standardThreshold  = 0.8
)

// errStop ends iteration early once enough lines are sampled.
var errStop = errors.New(errors.ErrCodeInternal, "stop iteration")

// IsStandardFormat reports whether the input already looks normalized: at
// least 80% of the first 10 non-blank lines are canonical "{ip} {port}".
func IsStandardFormat(lines []string) bool {
	sampled, canonical := 0, 0
	for _, line := range lines {
		if sampled >= standardSampleSize {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sampled++
		if endpoint.IsCanonical(line) {
			canonical++
		}
	}
	return sampled > 0 && float64(canonical)/float64(sampled) >= standardThreshold
}

// IsStandardFile is IsStandardFormat over the head of a file source.
func IsStandardFile(src *config.Source, cfg *config.Config) (bool, error) {
	var head []string
	err := Iterate(src, cfg, func(line string) error {
		if strings.TrimSpace(line) != "" {
			head = append(head, line)
		}
		if len(head) >= standardSampleSize {
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return false, err
	}
	return IsStandardFormat(head), nil
}
