package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	ierrors "github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

// DefaultConfigPath is read when -config is not given. Unlike an explicit
// path, it may be missing.
const DefaultConfigPath = "ipnorm.toml"

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool

	Version string
	Commit  string
	Date    string

	// Stdout receives command output; os.Stdout when nil.
	Stdout io.Writer
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ierrors.NewConfigError("failed to load configuration", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, ierrors.NewValidationError("configuration validation failed", err)
	}

	return cfg, nil
}

// loadConfigOrDefault loads the configuration without validating it. A missing
// default config file yields built-in defaults rooted at the working directory.
func loadConfigOrDefault(configPath string) (*config.Config, error) {
	if configPath == DefaultConfigPath {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			log.Debugf("No %s found, using defaults", configPath)
			return config.FromArgs(nil, ""), nil
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ierrors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// IsConfigError reports whether err comes from loading or validating the
// configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ierrors.ErrConfig) || errors.Is(err, ierrors.ErrValidation)
}

// absPaths resolves command line paths against the working directory so that
// they do not depend on the config file location.
func absPaths(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %v", p, err)
		}
		out[i] = abs
	}
	return out, nil
}
