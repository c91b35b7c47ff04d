package unpacker

import (
	"errors"

	"github.com/buildpacks/unpacker/archive"
)

type ErrorType string

const (
	ErrTypeSourceMissing     ErrorType = "ERR_SOURCE_MISSING"
	ErrTypeDestinationExists ErrorType = "ERR_DESTINATION_EXISTS"
	ErrTypeCleanupFailed     ErrorType = "ERR_CLEANUP_FAILED"
	ErrTypeDecompression     ErrorType = "ERR_DECOMPRESSION"
	ErrTypeArchiveFormat     ErrorType = "ERR_ARCHIVE_FORMAT"
	ErrTypeIO                ErrorType = "ERR_IO"
	ErrTypeInvalidRequest    ErrorType = "ERR_INVALID_REQUEST"
)

// Error is the only error type returned by Extractor operations.
type Error struct {
	Err  error
	Type ErrorType
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return e.Err.Error()
}

func (e *Error) Cause() error {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code is the caller-facing failure code.
func (e *Error) Code() string {
	return string(e.Type)
}

func NewError(cause error, errType ErrorType) *Error {
	return &Error{Err: cause, Type: errType}
}

// TypeOf returns the ErrorType carried by err, ErrTypeIO for any other
// non-nil error, and "" for nil.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Type
	}
	return ErrTypeIO
}

// classify maps a failure from the decoding or materialization stages
// onto the error taxonomy.
func classify(err error) *Error {
	var ue *Error
	switch {
	case errors.As(err, &ue):
		return ue
	case errors.Is(err, archive.ErrCorruptGzip):
		return NewError(err, ErrTypeDecompression)
	case errors.Is(err, archive.ErrCorruptTar), errors.Is(err, archive.ErrUnsafePath):
		return NewError(err, ErrTypeArchiveFormat)
	default:
		return NewError(err, ErrTypeIO)
	}
}
