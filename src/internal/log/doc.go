// Package log provides simple leveled logging for ipnorm.
//
// Messages are prefixed with a colored level tag: DEBUG, INFO, WARN or ERROR.
// Debug output is only produced in verbose mode. Errors always go to stderr,
// everything else goes to stdout unless SetForceStdErr is enabled, which the
// CLI does when the normalized list itself is written to stdout.
//
// # Example Usage
//
//	log.Infof("Processing source %q", name)
//	log.Warnf("Line %d rejected: %s", n, reason)
//
//	log.SetVerbose(true)
//	log.Debugf("Parsed %+v", outcome)
//
// Tests can capture output with SetOutput and restore it with ResetOutput.
//
// The package uses global state guarded by a mutex, so it is safe to call from
// the HTTP handlers concurrently.
package log
