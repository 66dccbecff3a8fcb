// Package lists reads endpoint lists from configured sources and runs them
// through the parser and collector.
//
// # Sources
//
// A source is one of:
//
//   - Remote URL: fetched by Download into the downloaded lists directory,
//     with an .md5 sidecar so unchanged lists are not rewritten
//   - Local file: read relative to the config directory
//   - Inline hosts: lines listed directly in the configuration
//
// URL and file sources may be encoded in UTF-8 or GBK. With encoding "auto"
// the first 4 KiB are checked and GBK is assumed when they are not valid UTF-8.
//
// # Example Usage
//
//	result, err := lists.Normalize(cfg, nil)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	for _, line := range result.Lines() {
//	    fmt.Println(line)
//	}
package lists
