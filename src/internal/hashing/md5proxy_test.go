package hashing

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

type failingWriter struct {
	limit int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) > f.limit {
		return f.limit, errors.New("disk full")
	}
	return len(p), nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestChecksumReaderProxy_ReadAll(t *testing.T) {
	testData := "1.2.3.4:80\n5.6.7.8 443\n"
	proxy := NewMD5ReaderProxy(strings.NewReader(testData))

	content, err := io.ReadAll(proxy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(content) != testData {
		t.Errorf("Expected %q, got %q", testData, string(content))
	}

	checksum, err := proxy.GetChecksum()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if checksum != md5Hex(testData) {
		t.Errorf("Expected checksum %s, got %s", md5Hex(testData), checksum)
	}
}

func TestChecksumReaderProxy_PartialRead(t *testing.T) {
	proxy := NewMD5ReaderProxy(strings.NewReader("hello world"))

	buf := make([]byte, 5)
	n, err := proxy.Read(buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 5 || string(buf) != "hello" {
		t.Errorf("Expected 'hello', got %q", string(buf[:n]))
	}

	checksum, _ := proxy.GetChecksum()
	if checksum != md5Hex("hello") {
		t.Errorf("Checksum must cover only the bytes read so far")
	}
}

func TestChecksumReaderProxy_Error(t *testing.T) {
	expected := errors.New("read failed")
	proxy := NewMD5ReaderProxy(&errorReader{err: expected})

	if _, err := proxy.Read(make([]byte, 10)); !errors.Is(err, expected) {
		t.Errorf("Expected %v, got %v", expected, err)
	}
}

func TestChecksumWriterProxy(t *testing.T) {
	var buf bytes.Buffer
	proxy := NewMD5WriterProxy(&buf)

	for _, chunk := range []string{"1.2.3.4 80\n", "5.6.7.8 443"} {
		if _, err := proxy.Write([]byte(chunk)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	want := "1.2.3.4 80\n5.6.7.8 443"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
	if proxy.Written() != int64(len(want)) {
		t.Errorf("Written() = %d, want %d", proxy.Written(), len(want))
	}

	checksum, err := proxy.GetChecksum()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if checksum != md5Hex(want) || checksum != Sum([]byte(want)) {
		t.Errorf("Unexpected checksum %s", checksum)
	}
}

func TestChecksumWriterProxy_Error(t *testing.T) {
	proxy := NewMD5WriterProxy(&failingWriter{limit: 3})

	n, err := proxy.Write([]byte("abcdef"))
	if err == nil || n != 3 {
		t.Fatalf("Expected short write with error, got n=%d err=%v", n, err)
	}
	if _, err := proxy.GetChecksum(); err == nil {
		t.Error("Expected GetChecksum to report the write error")
	}
}

func TestSum_Empty(t *testing.T) {
	if got := Sum(nil); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("Sum(nil) = %s", got)
	}
}
