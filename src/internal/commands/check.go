package commands

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	ierrors "github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/lists"
)

func CreateCheckCommand() *CheckCommand {
	gc := &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
	gc.fs.StringVar(&gc.Encoding, "encoding", config.EncodingAuto, "Input encoding: utf-8, gbk or auto")
	return gc
}

// CheckCommand reports whether a file is already in "{ip} {port}" form.
type CheckCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
	src *config.Source

	Encoding string
}

func (g *CheckCommand) Name() string {
	return g.fs.Name()
}

func (g *CheckCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}
	if g.fs.NArg() != 1 {
		return fmt.Errorf("check expects exactly one file, got %d", g.fs.NArg())
	}

	paths, err := absPaths(g.fs.Args())
	if err != nil {
		return err
	}

	g.ctx = ctx
	g.cfg = config.FromArgs(paths, "")
	g.src = g.cfg.Sources[0]
	g.src.Encoding = g.Encoding
	if err := g.cfg.ValidateConfig(); err != nil {
		return ierrors.NewSourceError("invalid input", err)
	}
	return nil
}

func (g *CheckCommand) Run() error {
	standard, err := lists.IsStandardFile(g.src, g.cfg)
	if err != nil {
		return err
	}

	name := filepath.Base(g.src.File)
	if standard {
		_, err = fmt.Fprintf(g.ctx.stdout(), "%s: standard format, no normalization needed\n", name)
	} else {
		_, err = fmt.Fprintf(g.ctx.stdout(), "%s: not in standard format, run 'ipnorm normalize %s'\n", name, g.src.File)
	}
	return err
}
