package unpacker

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/buildpacks/unpacker/archive"
)

const sniffSize = 512

// DetectMode inspects the start of the file at path. Gzip input is
// ModeGzipTar when the decompressed stream starts like a tar archive and
// ModeGzip otherwise; anything else is treated as ModeTar.
func DetectMode(path string) (Mode, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ModeAuto, NewError(errors.Errorf("source '%s' does not exist", path), ErrTypeSourceMissing)
		}
		return ModeAuto, errors.Wrap(err, "open source")
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := peek(br, sniffSize)
	if err != nil {
		return ModeAuto, errors.Wrap(err, "read source")
	}
	if !archive.IsGzip(header) {
		return ModeTar, nil
	}

	gz, err := archive.NewGzipReader(br)
	if err != nil {
		return ModeAuto, classify(err)
	}
	defer gz.Close()

	inner, err := peek(bufio.NewReader(gz), sniffSize)
	if err != nil {
		return ModeAuto, classify(err)
	}
	if archive.IsTar(inner) {
		return ModeGzipTar, nil
	}
	return ModeGzip, nil
}

// peek returns up to n leading bytes; a short stream is not an error.
func peek(br *bufio.Reader, n int) ([]byte, error) {
	b, err := br.Peek(n)
	if err == io.EOF || err == bufio.ErrBufferFull {
		err = nil
	}
	return b, err
}
