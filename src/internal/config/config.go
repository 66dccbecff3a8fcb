package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/ipnorm/src/internal/log"
	"github.com/maksimkurb/ipnorm/src/internal/utils"
)

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg, err := ParseConfig(content)
	if err != nil {
		return nil, err
	}
	cfg._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Downloaded lists directory: %s", cfg.GetAbsDownloadedListsDir())

	return cfg, nil
}

// ParseConfig decodes TOML content and applies defaults. Unknown keys are rejected.
func ParseConfig(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file: error at line %d, column %d: %v", row, col, derr)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("failed to parse config file: %s", serr.String())
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// FromArgs builds a configuration for files given on the command line.
// Relative paths are resolved against the working directory.
func FromArgs(inputs []string, output string) *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if output != "" {
		cfg.General.OutputFile = output
	}

	for _, input := range inputs {
		cfg.Sources = append(cfg.Sources, &Source{
			Name:     filepath.Base(input),
			File:     input,
			Encoding: EncodingAuto,
		})
	}

	if wd, err := os.Getwd(); err == nil {
		cfg._absConfigFilePath = filepath.Join(wd, "ipnorm.toml")
	}
	return cfg
}

// ApplyDefaults fills in unset optional values.
func (c *Config) ApplyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.OutputFile == "" {
		c.General.OutputFile = utils.DefaultOutputFile
	}
	if c.General.OutputTemplate == "" {
		c.General.OutputTemplate = DefaultOutputTemplate
	}
	if c.General.DownloadedListsDir == "" {
		c.General.DownloadedListsDir = DefaultDownloadedListsDir
	}

	if c.Upload != nil && c.Upload.DefaultTag == "" {
		c.Upload.DefaultTag = DefaultUploadTag
	}

	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = DefaultAPIListenAddr
	}
	if c.API.MaxBodyBytes == 0 {
		c.API.MaxBodyBytes = DefaultAPIMaxBodyBytes
	}

	for _, src := range c.Sources {
		if src.Encoding == "" {
			src.Encoding = EncodingUTF8
		}
	}
}
