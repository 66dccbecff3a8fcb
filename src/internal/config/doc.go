// Package config handles configuration file parsing and validation for ipnorm.
//
// The configuration is a TOML file describing where endpoint lists come from
// and what happens with the normalized result:
//
//   - general: output file, per-line output template, downloaded lists directory
//   - filter: networks to exclude from the final list
//   - upload: optional HTTP endpoint receiving the list
//   - storage: optional Postgres mirror
//   - api: listen address of the "serve" command
//   - source: one or more lists, each from a URL, a local file or inline hosts
//
// A config file is optional. When files are passed on the command line,
// FromArgs builds an equivalent in-memory configuration.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/ipnorm/ipnorm.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatal(err) // lists every problem, not only the first one
//	}
package config
