package cmd

import (
	"io"
	"os"

	"github.com/heroku/color"

	"github.com/buildpacks/unpacker/log"
)

var (
	DefaultLogger = log.NewDefaultLogger(os.Stderr)

	// Stdout receives command results. Log output goes to DefaultLogger.
	Stdout io.Writer = os.Stdout
)

func DisableColor(noColor bool) {
	color.Disable(noColor)
}
