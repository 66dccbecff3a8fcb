package lists

import (
	"strings"

	"github.com/maksimkurb/ipnorm/src/internal/collector"
	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
)

// InlineSource is the source name reported for lines passed to NormalizeLines.
const InlineSource = "inline"

// ErrEmptyInput is returned when no source contained a non-blank line.
var ErrEmptyInput = errors.NewSourceError("input is empty", nil)

// Observer is notified of every line fed to the collector.
type Observer interface {
	OnLine(source string, lineNo int, raw string, o endpoint.Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(source string, lineNo int, raw string, o endpoint.Outcome)

func (f ObserverFunc) OnLine(source string, lineNo int, raw string, o endpoint.Outcome) {
	f(source, lineNo, raw, o)
}

// Normalize reads every configured source in order and returns the
// deduplicated, sorted endpoints.
func Normalize(cfg *config.Config, observer Observer) (*collector.Result, error) {
	run := newRun(observer)
	for _, src := range cfg.Sources {
		lineNo := 0
		err := Iterate(src, cfg, func(line string) error {
			lineNo++
			run.feed(src.Name, lineNo, line)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return run.finish()
}

// NormalizeLines is Normalize for lines already in memory.
func NormalizeLines(lines []string, observer Observer) (*collector.Result, error) {
	run := newRun(observer)
	for i, line := range lines {
		run.feed(InlineSource, i+1, line)
	}
	return run.finish()
}

type run struct {
	collector *collector.Collector
	observer  Observer
	nonBlank  bool
}

func newRun(observer Observer) *run {
	return &run{collector: collector.New(), observer: observer}
}

func (r *run) feed(source string, lineNo int, line string) {
	if strings.TrimSpace(line) != "" {
		r.nonBlank = true
	}
	o := r.collector.AddLine(line)
	if r.observer != nil {
		r.observer.OnLine(source, lineNo, line, o)
	}
}

func (r *run) finish() (*collector.Result, error) {
	if !r.nonBlank {
		return nil, ErrEmptyInput
	}
	return r.collector.Finalize(), nil
}
