package cli

import (
	"flag"
)

var flagSet = flag.NewFlagSet("unpacker", flag.ExitOnError)

func FlagConcurrency(provided *int) {
	flagSet.IntVar(provided, "concurrency", concurrency, "maximum number of jobs extracted at once (0 for no limit)")
}

func FlagConfig(provided *string) {
	flagSet.StringVar(provided, "config", batchConfig, "path to batch file")
}

func FlagJSON(provided *bool) {
	flagSet.BoolVar(provided, "json", false, "print the result as JSON")
}

func FlagLogLevel(provided *string) {
	flagSet.StringVar(provided, "log-level", logLevel, "logging level")
}

func FlagNoColor(provided *bool) {
	flagSet.BoolVar(provided, "no-color", noColor, "disable color output")
}

func FlagOverwrite(provided *bool) {
	flagSet.BoolVar(provided, "overwrite", overwrite, "replace an existing destination")
}

func FlagVersion(provided *bool) {
	flagSet.BoolVar(provided, "version", false, "show version")
}
