// Package utils provides small file and path helpers shared by the commands.
//
//	absPath := utils.GetAbsolutePath("lists.d/feed.lst", "/etc/ipnorm")
//	// /etc/ipnorm/lists.d/feed.lst
//
//	utils.ProcessedPath("mixed.csv") // mixed_processed.txt
package utils
