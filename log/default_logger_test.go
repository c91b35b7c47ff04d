package log_test

import (
	"bytes"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/unpacker/log"
	h "github.com/buildpacks/unpacker/testhelpers"
)

func TestDefaultLogger(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "DefaultLogger", testDefaultLogger, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testDefaultLogger(t *testing.T, when spec.G, it spec.S) {
	var (
		out    *bytes.Buffer
		logger *log.DefaultLogger
	)

	it.Before(func() {
		out = &bytes.Buffer{}
		logger = log.NewDefaultLogger(out)
	})

	it("writes info messages with a trailing newline", func() {
		logger.Infof("extracted %d entries", 3)
		h.AssertEq(t, out.String(), "extracted 3 entries\n")
	})

	it("prefixes warnings and errors", func() {
		logger.Warn("careful")
		logger.Error("broken\n")
		h.AssertEq(t, out.String(), "Warning: careful\nERROR: broken\n")
	})

	it("hides debug output at the default level", func() {
		logger.Debug("hidden")
		h.AssertEq(t, out.String(), "")
	})

	when("#SetLevel", func() {
		it("shows debug output once lowered", func() {
			h.AssertNil(t, logger.SetLevel("debug"))
			logger.Debug("shown")
			h.AssertEq(t, out.String(), "shown\n")
		})

		it("rejects unknown levels", func() {
			h.AssertError(t, logger.SetLevel("chatty"), "parse log level 'chatty'")
		})

		it("keeps the current level on failure", func() {
			h.AssertNil(t, logger.SetLevel("warn"))
			h.AssertNotNil(t, logger.SetLevel("chatty"))
			logger.Info("hidden")
			h.AssertEq(t, out.String(), "")
		})
	})
}
