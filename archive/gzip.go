package archive

import (
	"bufio"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// GzipReader decompresses a gzip stream member by member. Header,
// truncation and checksum failures inside a member surface as a
// *StreamError of kind ErrCorruptGzip, both from NewGzipReader and from
// Read. Bytes after the last complete member that do not start another
// member end the stream.
type GzipReader struct {
	src *bufio.Reader
	zr  *gzip.Reader
	eof bool
	err error
}

func NewGzipReader(r io.Reader) (*GzipReader, error) {
	src, ok := r.(*bufio.Reader)
	if !ok {
		src = bufio.NewReader(r)
	}
	zr, err := gzip.NewReader(src)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, streamErr(ErrCorruptGzip, err)
	}
	zr.Multistream(false)
	return &GzipReader{src: src, zr: zr}, nil
}

func (g *GzipReader) Read(b []byte) (int, error) {
	for {
		if g.err != nil {
			return 0, g.err
		}
		if g.eof {
			return 0, io.EOF
		}
		n, err := g.zr.Read(b)
		switch {
		case err == io.EOF:
			g.nextMember()
			if n > 0 {
				return n, nil
			}
		case err != nil:
			g.err = streamErr(ErrCorruptGzip, err)
			return n, g.err
		default:
			return n, nil
		}
	}
}

// nextMember positions the reader on the following gzip member, or marks
// the end of the stream when what follows is not a gzip header.
func (g *GzipReader) nextMember() {
	err := g.zr.Reset(g.src)
	switch {
	case err == nil:
		g.zr.Multistream(false)
	case err == io.EOF, err == io.ErrUnexpectedEOF, errors.Is(err, gzip.ErrHeader):
		g.eof = true
	default:
		g.err = streamErr(ErrCorruptGzip, err)
	}
}

// Drain consumes what is left of the stream so the trailer checksum is
// verified even when the consumer stopped reading early.
func (g *GzipReader) Drain() error {
	_, err := io.Copy(io.Discard, g)
	return err
}

// Err returns the first decompression failure seen by Read, if any.
func (g *GzipReader) Err() error {
	return g.err
}

func (g *GzipReader) Close() error {
	return g.zr.Close()
}

// IsGzip reports whether header starts with the gzip magic bytes.
func IsGzip(header []byte) bool {
	return len(header) >= len(gzipMagic) && header[0] == gzipMagic[0] && header[1] == gzipMagic[1]
}
