package unpacker

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the decoder pipeline for a request.
type Mode int

const (
	ModeAuto Mode = iota
	ModeTar
	ModeGzip
	ModeGzipTar
)

var modeNames = map[Mode]string{
	ModeAuto:    "auto",
	ModeTar:     "tar",
	ModeGzip:    "gzip",
	ModeGzipTar: "gzip-tar",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// DestinationIsDir reports whether the destination of m is a directory
// root rather than a single output file.
func (m Mode) DestinationIsDir() bool {
	return m != ModeGzip
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "tar":
		return ModeTar, nil
	case "gzip", "gz":
		return ModeGzip, nil
	case "gzip-tar", "tar.gz", "tgz":
		return ModeGzipTar, nil
	}
	return ModeAuto, NewError(fmt.Errorf("unknown mode '%s'", s), ErrTypeInvalidRequest)
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Request is one extraction job. Destination is a directory for the tar
// modes and a file path for ModeGzip.
type Request struct {
	Source      string
	Destination string
	Overwrite   bool
}

// Result is returned on success; Path is the absolute destination path.
type Result struct {
	Path string `json:"path"`
}

func (r Request) validate() error {
	if r.Source == "" {
		return NewError(errors.New("source path is empty"), ErrTypeInvalidRequest)
	}
	if r.Destination == "" {
		return NewError(errors.New("destination path is empty"), ErrTypeInvalidRequest)
	}
	return nil
}
