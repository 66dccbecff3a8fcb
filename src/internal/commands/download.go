package commands

import (
	"flag"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/lists"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

func CreateDownloadCommand() *DownloadCommand {
	gc := &DownloadCommand{
		fs: flag.NewFlagSet("download", flag.ExitOnError),
	}
	return gc
}

type DownloadCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config
}

func (g *DownloadCommand) Name() string {
	return g.fs.Name()
}

func (g *DownloadCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *DownloadCommand) Run() error {
	updated, err := lists.DownloadAll(g.cfg)
	log.Infof("%d source(s) updated", updated)
	return err
}
