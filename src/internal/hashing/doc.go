// Package hashing provides MD5 checksum calculation utilities.
//
// ChecksumReaderProxy hashes a stream while it is read; it is used when
// downloading URL sources to skip rewriting lists that did not change.
// ChecksumWriterProxy hashes data while it is written; it is used to produce
// the ".md5" sidecar of the normalized output file.
//
//	proxy := hashing.NewMD5ReaderProxy(resp.Body)
//	content, _ := io.ReadAll(proxy)
//	checksum, _ := proxy.GetChecksum()
package hashing
