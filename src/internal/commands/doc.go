// Package commands implements CLI command handlers for ipnorm.
//
// Each command implements the Runner interface:
//   - Init(): Parse arguments and load configuration
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - normalize: Parse, deduplicate and sort endpoint lists
//   - download: Download URL sources to the downloaded lists directory
//   - check: Report whether a file is already in standard format
//   - serve: Run the HTTP API
//
// # Example Usage
//
//	cmd := commands.CreateNormalizeCommand()
//	ctx := &commands.AppContext{ConfigPath: "ipnorm.toml"}
//	if err := cmd.Init([]string{"-o", "out.txt", "list.txt"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
