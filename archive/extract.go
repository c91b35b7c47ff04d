package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/unpacker/log"
)

const copyBufferSize = 32 * 1024

// Stats summarizes what Extract wrote.
type Stats struct {
	Dirs    int
	Files   int
	Skipped int
	Bytes   int64
}

// Extract materializes every entry of er under dest, which must already
// exist. It stops at the first failure and leaves entries already
// written in place.
func Extract(er *EntryReader, dest string, logger log.Logger) (Stats, error) {
	var stats Stats
	dest, err := filepath.Abs(dest)
	if err != nil {
		return stats, errors.Wrap(err, "resolve destination")
	}
	buf := make([]byte, copyBufferSize)
	dirsFound := map[string]bool{dest: true}

	for {
		entry, err := er.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		path, err := SafeJoin(dest, entry.Name)
		if err != nil {
			return stats, err
		}

		switch entry.Type {
		case EntryDir:
			if err := os.MkdirAll(path, os.ModePerm); err != nil {
				return stats, errors.Wrapf(err, "create directory '%s'", entry.Name)
			}
			dirsFound[path] = true
			stats.Dirs++
			logger.Debugf("Created directory '%s'", entry.Name)

		case EntryFile:
			dirPath := filepath.Dir(path)
			if !dirsFound[dirPath] {
				if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
					return stats, errors.Wrapf(err, "create parent directory for '%s'", entry.Name)
				}
				dirsFound[dirPath] = true
			}
			n, err := WriteFile(er, path, buf)
			if err != nil {
				return stats, errors.Wrapf(err, "write '%s'", entry.Name)
			}
			stats.Files++
			stats.Bytes += n
			logger.Debugf("Wrote '%s' (%d bytes)", entry.Name, n)

		default:
			stats.Skipped++
			logger.Warnf("Skipping unsupported entry '%s'", entry.Name)
		}
	}
}

// WriteFile copies in to a newly created or truncated file at path. The
// file is closed before WriteFile returns.
func WriteFile(in io.Reader, path string, buf []byte) (int64, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return 0, err
	}
	n, err := io.CopyBuffer(fh, in, buf)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	return n, err
}
