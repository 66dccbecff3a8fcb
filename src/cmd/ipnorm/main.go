package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/ipnorm/src/internal/commands"
	"github.com/maksimkurb/ipnorm/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", commands.DefaultConfigPath, "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging (prints every rejected line)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "IPv4 Endpoint List Normalizer\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  normalize [file...]     Parse, deduplicate and sort endpoint lists\n")
		fmt.Fprintf(os.Stderr, "  download                Download URL sources to downloaded_lists_dir\n")
		fmt.Fprintf(os.Stderr, "  check <file>            Check whether a file is already in \"ip port\" format\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateNormalizeCommand(),
		commands.CreateDownloadCommand(),
		commands.CreateCheckCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				if commands.IsConfigError(err) {
					log.Errorf("Check %s or pass another file with -config", ctx.ConfigPath)
				}
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
