package commands

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	"github.com/maksimkurb/ipnorm/src/internal/lists"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

const progressTemplate = `{{counters . }} {{bar . }} {{percent . }} {{etime . }}`

// lineObserver advances the progress bar and logs rejected lines in verbose mode.
type lineObserver struct {
	bar *pb.ProgressBar
}

func (o *lineObserver) OnLine(source string, lineNo int, raw string, outcome endpoint.Outcome) {
	if !outcome.OK() && log.IsVerbose() {
		log.Debugf("%s:%d: %s: %q", source, lineNo, outcome.Reason, raw)
	}
	if o.bar != nil {
		o.bar.Increment()
	}
}

func (o *lineObserver) finish() {
	if o.bar != nil {
		o.bar.Finish()
	}
}

// newLineObserver starts a progress bar over the total number of source lines,
// or returns an observer without one when out is nil.
func newLineObserver(cfg *config.Config, out io.Writer) (*lineObserver, error) {
	if out == nil {
		return &lineObserver{}, nil
	}

	total, err := countLines(cfg)
	if err != nil {
		return nil, err
	}

	bar := pb.New(total)
	bar.SetTemplate(progressTemplate)
	bar.SetWriter(out)
	bar.Start()
	return &lineObserver{bar: bar}, nil
}

func countLines(cfg *config.Config) (int, error) {
	total := 0
	for _, src := range cfg.Sources {
		err := lists.Iterate(src, cfg, func(string) error {
			total++
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
