package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/api"
	"github.com/maksimkurb/ipnorm/src/internal/config"
	ierrors "github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

const shutdownTimeout = 30 * time.Second

// ServeCommand runs the HTTP API until SIGINT or SIGTERM.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	// Command-specific flags
	listenAddr string

	// stop, when set, replaces OS signals as the shutdown trigger.
	stop <-chan struct{}
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to bind the HTTP server (overrides [api] listen_addr)")
	return c
}

// Name returns the command name.
func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

// Init initializes the serve command with arguments.
func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if c.listenAddr != "" {
		cfg.API.ListenAddr = c.listenAddr
	}
	if err := cfg.ValidateSettings(); err != nil {
		return ierrors.NewValidationError("configuration validation failed", err)
	}
	c.cfg = cfg

	return nil
}

// Run starts the HTTP API server.
func (c *ServeCommand) Run() error {
	log.Infof("Access restricted to private subnets only:")
	log.Infof("  IPv4: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, 127.0.0.0/8")
	log.Infof("  IPv6: fc00::/7, fe80::/10, ::1/128")
	log.Infof("Requests from public IPs will be rejected with 403 Forbidden")

	handler := api.NewHandler(c.cfg, api.VersionInfo{
		Version: c.ctx.Version,
		Commit:  c.ctx.Commit,
		Date:    c.ctx.Date,
	})
	server := api.NewServer(c.cfg.API.ListenAddr, handler)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Channel to listen for interrupt signals
	var shutdown chan os.Signal
	if c.stop == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)
	}

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)
		return c.shutdown(server, serverErrors)

	case <-c.stop:
		return c.shutdown(server, serverErrors)
	}
}

func (c *ServeCommand) shutdown(server *api.Server, serverErrors <-chan error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-serverErrors; err != nil {
		return err
	}

	log.Infof("Server stopped gracefully")
	return nil
}
