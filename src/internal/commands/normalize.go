package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/collector"
	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	ierrors "github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/filter"
	"github.com/maksimkurb/ipnorm/src/internal/lists"
	"github.com/maksimkurb/ipnorm/src/internal/log"
	"github.com/maksimkurb/ipnorm/src/internal/output"
	"github.com/maksimkurb/ipnorm/src/internal/storage"
	"github.com/maksimkurb/ipnorm/src/internal/storage/postgres"
	"github.com/maksimkurb/ipnorm/src/internal/utils"
)

// StdoutOutput as the -o value writes the result to standard output.
const StdoutOutput = "-"

func CreateNormalizeCommand() *NormalizeCommand {
	gc := &NormalizeCommand{
		fs: flag.NewFlagSet("normalize", flag.ExitOnError),
	}

	gc.fs.StringVar(&gc.Output, "o", "", "Output file ('-' for stdout, default: processed_ips.txt or <input>_processed.txt)")
	gc.fs.StringVar(&gc.Template, "template", "", "Output line template, e.g. '{{ip}}:{{port}}#{{tag}}'")
	gc.fs.StringVar(&gc.Exclude, "exclude", "", "Comma-separated CIDRs or addresses to drop from the result")
	gc.fs.BoolVar(&gc.SkipStandard, "skip-standard", false, "Copy a single input unchanged if it is already in standard format")
	gc.fs.BoolVar(&gc.NoProgress, "no-progress", false, "Disable the progress bar")
	gc.fs.BoolVar(&gc.Upload, "upload", false, "Upload the result to [upload] url")
	gc.fs.BoolVar(&gc.Store, "store", false, "Save the result to [storage] postgres_dsn")

	return gc
}

type NormalizeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	Output       string
	Template     string
	Exclude      string
	SkipStandard bool
	NoProgress   bool
	Upload       bool
	Store        bool
}

func (g *NormalizeCommand) Name() string {
	return g.fs.Name()
}

func (g *NormalizeCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}
	g.ctx = ctx
	if g.toStdout() {
		// keep stdout clean for the result
		log.SetForceStdErr(true)
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}

	if inputs := g.fs.Args(); len(inputs) > 0 {
		paths, err := absPaths(inputs)
		if err != nil {
			return err
		}
		cfg.Sources = config.FromArgs(paths, "").Sources
		if g.Output == "" && len(paths) == 1 && !utils.FileExists(ctx.ConfigPath) {
			g.Output = utils.ProcessedPath(paths[0])
		}
	}

	if g.Output != "" && g.Output != StdoutOutput {
		abs, err := absPaths([]string{g.Output})
		if err != nil {
			return err
		}
		cfg.General.OutputFile = abs[0]
	}
	if g.Template != "" {
		cfg.General.OutputTemplate = g.Template
	}
	if g.Exclude != "" {
		if cfg.Filter == nil {
			cfg.Filter = &config.FilterConfig{}
		}
		for _, network := range strings.Split(g.Exclude, ",") {
			if network = strings.TrimSpace(network); network != "" {
				cfg.Filter.Exclude = append(cfg.Filter.Exclude, network)
			}
		}
	}

	if err := cfg.ValidateConfig(); err != nil {
		return ierrors.NewValidationError("configuration validation failed", err)
	}
	if g.Upload && (cfg.Upload == nil || cfg.Upload.URL == "") {
		return fmt.Errorf("-upload requires [upload] url in the configuration")
	}
	if g.Store && (cfg.Storage == nil || cfg.Storage.PostgresDSN == "") {
		return fmt.Errorf("-store requires [storage] postgres_dsn in the configuration")
	}

	g.cfg = cfg
	return nil
}

func (g *NormalizeCommand) Run() error {
	if g.SkipStandard {
		if copied, err := g.copyIfStandard(); err != nil || copied {
			return err
		}
	}

	exclude, err := filter.New(g.cfg.ExcludedNetworks())
	if err != nil {
		return err
	}
	if exclude.Len() > 0 {
		log.Debugf("Excluding networks: %v", exclude.Prefixes())
	}

	observer, err := newLineObserver(g.cfg, g.progressWriter())
	if err != nil {
		return err
	}
	result, err := lists.Normalize(g.cfg, observer)
	observer.finish()
	if err != nil {
		return err
	}

	result, excluded := result.Exclude(exclude)
	g.printStats(result.Stats, excluded)

	data, err := output.Render(result, g.cfg.General.OutputTemplate)
	if err != nil {
		return err
	}
	if err := g.write(data); err != nil {
		return err
	}

	ctx := context.Background()
	if g.Upload {
		if _, err := output.Upload(ctx, g.cfg.Upload.URL, g.cfg.Upload.Token, g.cfg.Upload.DefaultTag, result); err != nil {
			return err
		}
	}
	if g.Store {
		if err := g.store(ctx, result); err != nil {
			return err
		}
	}

	return nil
}

func (g *NormalizeCommand) toStdout() bool {
	return g.Output == StdoutOutput
}

func (g *NormalizeCommand) progressWriter() io.Writer {
	if g.NoProgress || g.toStdout() || log.IsDisabled() {
		return nil
	}
	return os.Stderr
}

func (g *NormalizeCommand) write(data []byte) error {
	if g.toStdout() {
		if len(data) > 0 {
			data = append(data, '\n')
		}
		_, err := g.ctx.stdout().Write(data)
		return err
	}

	path := g.cfg.GetAbsOutputFile()
	if err := output.WriteFile(path, data, g.cfg.General.WriteChecksum); err != nil {
		return err
	}
	log.Infof("Result saved to %s", path)
	return nil
}

func (g *NormalizeCommand) store(ctx context.Context, result *collector.Result) error {
	repo, err := postgres.Open(ctx, g.cfg.Storage.PostgresDSN)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SaveEndpoints(ctx, storage.RecordsFromResult(result, time.Now())); err != nil {
		return err
	}
	log.Infof("Saved %d endpoints to Postgres", len(result.Endpoints))
	return nil
}

// copyIfStandard copies a single file source to the output unchanged when it
// is already in standard format.
func (g *NormalizeCommand) copyIfStandard() (bool, error) {
	if len(g.cfg.Sources) != 1 || g.cfg.Sources[0].File == "" {
		log.Warnf("-skip-standard applies to a single file input only, ignoring")
		return false, nil
	}
	src := g.cfg.Sources[0]

	standard, err := lists.IsStandardFile(src, g.cfg)
	if err != nil || !standard {
		return false, err
	}

	path, err := src.GetAbsolutePath(g.cfg)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	log.Infof("Input is already in standard format, copying unchanged")
	if g.toStdout() {
		_, err = g.ctx.stdout().Write(data)
		return true, err
	}
	if path == g.cfg.GetAbsOutputFile() {
		return true, nil
	}
	return true, g.write(data)
}

func (g *NormalizeCommand) printStats(s collector.Stats, excluded int) {
	log.Infof("Total lines: %d", s.Total)
	log.Infof("Processed:   %d", s.Processed)
	log.Infof("Skipped:     %d", s.Skipped)
	for _, reason := range []endpoint.Reason{endpoint.InvalidFormat, endpoint.InvalidIP, endpoint.InvalidPort} {
		if n := s.Rejected[reason]; n > 0 {
			log.Debugf("  %s: %d", reason, n)
		}
	}
	log.Infof("Unique:      %d", s.Unique)
	log.Infof("Excluded:    %d", excluded)
}
