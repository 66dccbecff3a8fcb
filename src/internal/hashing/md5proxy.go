package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// ChecksumProvider is implemented by anything that can report the MD5 of the data it has seen.
type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy calculates the MD5 checksum of data as it is read.
type ChecksumReaderProxy struct {
	reader   io.Reader
	checksum hash.Hash
}

// NewMD5ReaderProxy creates a new instance of ChecksumReaderProxy.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads data from the underlying reader and feeds it to the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		// hash.Hash.Write never returns an error
		_, _ = p.checksum.Write(buf[:n])
	}
	return n, err
}

// GetChecksum returns the calculated MD5 checksum as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	return hex.EncodeToString(p.checksum.Sum(nil)), nil
}

// ChecksumWriterProxy calculates the MD5 checksum of data as it is written.
// Only bytes accepted by the underlying writer are hashed.
type ChecksumWriterProxy struct {
	writer   io.Writer
	checksum hash.Hash
	written  int64
	err      error
}

// NewMD5WriterProxy creates a new instance of ChecksumWriterProxy.
func NewMD5WriterProxy(writer io.Writer) *ChecksumWriterProxy {
	return &ChecksumWriterProxy{
		writer:   writer,
		checksum: md5.New(),
	}
}

// Write writes data to the underlying writer and feeds the written part to the checksum.
func (p *ChecksumWriterProxy) Write(buf []byte) (int, error) {
	n, err := p.writer.Write(buf)
	if n > 0 {
		_, _ = p.checksum.Write(buf[:n])
		p.written += int64(n)
	}
	if err != nil && p.err == nil {
		p.err = err
	}
	return n, err
}

// Written returns the number of bytes written so far.
func (p *ChecksumWriterProxy) Written() int64 {
	return p.written
}

// GetChecksum returns the MD5 of the written data, or the first write error.
func (p *ChecksumWriterProxy) GetChecksum() (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return hex.EncodeToString(p.checksum.Sum(nil)), nil
}

// Sum returns the MD5 of data as a hex string.
func Sum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
