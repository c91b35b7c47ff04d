package archive

import (
	"errors"
	"io/fs"
)

var (
	ErrCorruptGzip = errors.New("invalid gzip stream")
	ErrCorruptTar  = errors.New("invalid tar archive")
	ErrUnsafePath  = errors.New("entry path escapes destination")
)

// StreamError is returned when a decoder cannot make sense of its input.
// Kind is one of the Err* sentinels above; Err is the underlying cause.
type StreamError struct {
	Kind error
	Err  error
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// streamErr tags err with kind unless it already carries a decoder
// failure or is a filesystem error from the underlying source.
func streamErr(kind, err error) error {
	var se *StreamError
	if errors.As(err, &se) {
		return err
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return &StreamError{Kind: kind, Err: err}
}
