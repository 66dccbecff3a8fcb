package lists

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/utils"
)

const (
	maxLineSize = 1 << 20
	sniffSize   = 4 << 10
)

// Iterate calls fn for every line of the source, in order. URL sources are read
// from their downloaded copy.
func Iterate(src *config.Source, cfg *config.Config, fn func(line string) error) error {
	if src.URL == "" && src.File == "" {
		for _, host := range src.Hosts {
			if err := fn(host); err != nil {
				return err
			}
		}
		return nil
	}

	path, err := src.GetAbsolutePath(cfg)
	if err != nil {
		return errors.NewSourceError(fmt.Sprintf("source %q", src.Name), err)
	}

	file, err := os.Open(path)
	if err != nil {
		if src.URL != "" && os.IsNotExist(err) {
			return errors.NewSourceError(fmt.Sprintf("source %q is not downloaded yet, please run 'ipnorm download' first", src.Name), err)
		}
		return errors.NewSourceError(fmt.Sprintf("failed to read source file '%s'", path), err)
	}
	defer utils.CloseOrWarn(file)

	reader, err := decodingReader(file, src.Encoding)
	if err != nil {
		return errors.NewSourceError(fmt.Sprintf("failed to decode source %q", src.Name), err)
	}

	return ScanLines(reader, fn)
}

// ScanLines calls fn for every line of r. Lines may be up to 1 MiB long.
func ScanLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ReadLines returns all lines of r. A leading byte order mark is dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	err := ScanLines(skipBOM(r), func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// decodingReader wraps r so that it yields UTF-8. With "auto" the first bytes
// are sniffed and GBK is assumed when they are not valid UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", config.EncodingUTF8:
		return skipBOM(r), nil
	case config.EncodingGBK:
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	case config.EncodingAuto:
		buffered := bufio.NewReaderSize(r, sniffSize)
		head, err := buffered.Peek(sniffSize)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, err
		}
		if looksLikeUTF8(head) {
			return skipBOM(buffered), nil
		}
		return transform.NewReader(buffered, simplifiedchinese.GBK.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// skipBOM drops a leading byte order mark. Input without one passes through
// untouched.
func skipBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// looksLikeUTF8 tolerates a multi-byte sequence cut at the end of the sample.
func looksLikeUTF8(sample []byte) bool {
	sample = bytes.TrimPrefix(sample, []byte{0xEF, 0xBB, 0xBF})
	for len(sample) > 0 {
		r, size := utf8.DecodeRune(sample)
		if r == utf8.RuneError && size == 1 {
			return len(sample) < utf8.UTFMax && !utf8.FullRune(sample)
		}
		sample = sample[size:]
	}
	return true
}
