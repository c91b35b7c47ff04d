package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"strings"
)

type TarReader interface {
	Next() (*tar.Header, error)
	Read(b []byte) (int, error)
}

type EntryType int

const (
	EntryFile EntryType = iota
	EntryDir
	// EntryOther covers links, devices and fifos, which are not materialized.
	EntryOther
)

// Entry is one record of a tar archive. Its content is readable from the
// EntryReader that produced it until the next call to Next.
type Entry struct {
	Name string
	Type EntryType
	Size int64
}

func (e *Entry) IsDir() bool {
	return e.Type == EntryDir
}

// EntryReader walks a tar stream one entry at a time. It is forward-only;
// io.EOF from Next marks the end of the archive.
type EntryReader struct {
	tr TarReader
}

func NewEntryReader(r io.Reader) *EntryReader {
	return &EntryReader{tr: tar.NewReader(r)}
}

func NewEntryReaderFrom(tr TarReader) *EntryReader {
	return &EntryReader{tr: tr}
}

func (r *EntryReader) Next() (*Entry, error) {
	for {
		hdr, err := r.tr.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		// containment is decided by SafeJoin at materialization time
		if errors.Is(err, tar.ErrInsecurePath) && hdr != nil {
			err = nil
		}
		if err != nil {
			return nil, streamErr(ErrCorruptTar, err)
		}
		if hdr.Name == "" {
			continue
		}
		return &Entry{
			Name: hdr.Name,
			Type: entryType(hdr),
			Size: hdr.Size,
		}, nil
	}
}

// Read reads content of the current entry. A stream that ends before the
// entry's declared size is reported as a corrupt archive.
func (r *EntryReader) Read(b []byte) (int, error) {
	n, err := r.tr.Read(b)
	if err != nil && err != io.EOF {
		return n, streamErr(ErrCorruptTar, err)
	}
	return n, err
}

func entryType(hdr *tar.Header) EntryType {
	switch hdr.Typeflag {
	case tar.TypeDir:
		return EntryDir
	case tar.TypeReg, tar.TypeRegA, tar.TypeCont:
		if strings.HasSuffix(hdr.Name, "/") {
			return EntryDir
		}
		return EntryFile
	default:
		return EntryOther
	}
}

const (
	tarMagicOffset = 257
	tarBlockSize   = 512
)

// IsTar reports whether header looks like the first block of a tar archive,
// either by its ustar magic or by being an all-zero end-of-archive block.
func IsTar(header []byte) bool {
	if len(header) >= tarMagicOffset+5 && string(header[tarMagicOffset:tarMagicOffset+5]) == "ustar" {
		return true
	}
	return len(header) >= tarBlockSize && bytes.Equal(header[:tarBlockSize], make([]byte, tarBlockSize))
}
