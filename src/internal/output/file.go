package output

import (
	"fmt"
	"io"

	"github.com/maksimkurb/ipnorm/src/internal/errors"
	"github.com/maksimkurb/ipnorm/src/internal/hashing"
	"github.com/maksimkurb/ipnorm/src/internal/log"
	"github.com/maksimkurb/ipnorm/src/internal/utils"
)

// WriteFile atomically replaces path with data. With withChecksum the MD5 of
// the written bytes is stored in path + ".md5".
func WriteFile(path string, data []byte, withChecksum bool) error {
	var proxy *hashing.ChecksumWriterProxy
	err := utils.WriteFileAtomic(path, 0644, func(w io.Writer) error {
		proxy = hashing.NewMD5WriterProxy(w)
		_, err := proxy.Write(data)
		return err
	})
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write output file %s", path), err)
	}

	if withChecksum {
		if err := hashing.WriteChecksum(proxy, path); err != nil {
			return errors.NewOutputError("failed to write output checksum", err)
		}
		log.Debugf("Wrote checksum to %s", hashing.SidecarPath(path))
	}

	log.Debugf("Wrote %d bytes to %s", proxy.Written(), path)
	return nil
}
