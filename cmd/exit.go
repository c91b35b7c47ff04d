package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/buildpacks/unpacker"
)

const (
	CodeForFailed      = 1
	CodeForInvalidArgs = 3

	CodeForSourceMissing     = 10
	CodeForDestinationExists = 11
	CodeForCleanupFailed     = 12
	CodeForDecompression     = 20
	CodeForArchiveFormat     = 21
	CodeForIO                = 30
)

var exitCodes = map[unpacker.ErrorType]int{
	unpacker.ErrTypeSourceMissing:     CodeForSourceMissing,
	unpacker.ErrTypeDestinationExists: CodeForDestinationExists,
	unpacker.ErrTypeCleanupFailed:     CodeForCleanupFailed,
	unpacker.ErrTypeDecompression:     CodeForDecompression,
	unpacker.ErrTypeArchiveFormat:     CodeForArchiveFormat,
	unpacker.ErrTypeIO:                CodeForIO,
	unpacker.ErrTypeInvalidRequest:    CodeForInvalidArgs,
}

// CodeFor returns the process exit code for a failure of type errType.
func CodeFor(errType unpacker.ErrorType) int {
	if code, ok := exitCodes[errType]; ok {
		return code
	}
	return CodeForFailed
}

type ErrorFail struct {
	Err    error
	Code   int
	Action []string
}

func (e *ErrorFail) Error() string {
	message := "failed to " + strings.Join(e.Action, " ")
	if e.Err == nil {
		return message
	}
	return fmt.Sprintf("%s: %s", message, e.Err)
}

func (e *ErrorFail) Unwrap() error {
	return e.Err
}

func FailCode(code int, action ...string) *ErrorFail {
	return FailErrCode(nil, code, action...)
}

// FailErr keeps the code of an existing *ErrorFail and otherwise derives
// it from the unpacker error type carried by err.
func FailErr(err error, action ...string) *ErrorFail {
	code := CodeForFailed
	var uerr *unpacker.Error
	if ef, ok := err.(*ErrorFail); ok {
		code = ef.Code
	} else if errors.As(err, &uerr) {
		code = CodeFor(uerr.Type)
	}
	return FailErrCode(err, code, action...)
}

func FailErrCode(err error, code int, action ...string) *ErrorFail {
	return &ErrorFail{Err: err, Code: code, Action: action}
}

func Exit(err error) {
	if err == nil {
		os.Exit(0)
	}
	DefaultLogger.Errorf("%s\n", err)
	os.Exit(ExitCode(err))
}

// ExitCode is the code Exit would terminate with for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ef, ok := err.(*ErrorFail); ok {
		return ef.Code
	}
	return CodeForFailed
}

func ExitWithVersion() {
	DefaultLogger.Info(buildVersion())
	os.Exit(0)
}
