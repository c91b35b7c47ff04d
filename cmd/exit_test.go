package cmd_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/unpacker"
	"github.com/buildpacks/unpacker/cmd"
	h "github.com/buildpacks/unpacker/testhelpers"
)

func TestExit(t *testing.T) {
	spec.Run(t, "Exit", testExit, spec.Report(report.Terminal{}))
}

func testExit(t *testing.T, when spec.G, it spec.S) {
	when(".CodeFor", func() {
		it("maps every error type to its own code", func() {
			seen := map[int]bool{}
			for _, errType := range []unpacker.ErrorType{
				unpacker.ErrTypeSourceMissing,
				unpacker.ErrTypeDestinationExists,
				unpacker.ErrTypeCleanupFailed,
				unpacker.ErrTypeDecompression,
				unpacker.ErrTypeArchiveFormat,
				unpacker.ErrTypeIO,
				unpacker.ErrTypeInvalidRequest,
			} {
				code := cmd.CodeFor(errType)
				h.AssertEq(t, seen[code], false)
				seen[code] = true
			}
		})

		it("falls back to the generic failure code", func() {
			h.AssertEq(t, cmd.CodeFor("ERR_SOMETHING_ELSE"), cmd.CodeForFailed)
		})
	})

	when(".FailErr", func() {
		it("derives the code from an unpacker error", func() {
			err := pkgerrors.Wrap(unpacker.NewError(errors.New("exists"), unpacker.ErrTypeDestinationExists), "prepare")

			fail := cmd.FailErr(err, "extract")

			h.AssertEq(t, fail.Code, cmd.CodeForDestinationExists)
			h.AssertEq(t, fail.Error(), "failed to extract: prepare: exists")
		})

		it("keeps the code of a wrapped failure", func() {
			fail := cmd.FailErr(cmd.FailCode(cmd.CodeForInvalidArgs, "parse arguments"), "run")

			h.AssertEq(t, fail.Code, cmd.CodeForInvalidArgs)
			h.AssertEq(t, fail.Error(), "failed to run: failed to parse arguments")
		})

		it("uses the generic code for other errors", func() {
			h.AssertEq(t, cmd.FailErr(errors.New("boom"), "run").Code, cmd.CodeForFailed)
		})
	})

	when(".ExitCode", func() {
		it("returns the failure code", func() {
			h.AssertEq(t, cmd.ExitCode(nil), 0)
			h.AssertEq(t, cmd.ExitCode(cmd.FailCode(cmd.CodeForArchiveFormat, "read")), cmd.CodeForArchiveFormat)
			h.AssertEq(t, cmd.ExitCode(errors.New("plain")), cmd.CodeForFailed)
		})
	})
}
