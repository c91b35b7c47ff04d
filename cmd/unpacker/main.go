package main

import (
	"os"
	"path/filepath"

	"github.com/buildpacks/unpacker"
	"github.com/buildpacks/unpacker/cmd"
	"github.com/buildpacks/unpacker/cmd/unpacker/cli"
)

const usage = "\nUsage: unpacker <untar|ungzip|ungzip-tar|extract|batch> [flags] <args>"

func main() {
	if len(os.Args) < 2 {
		cmd.Exit(cmd.FailCode(cmd.CodeForInvalidArgs, "parse arguments:", usage))
	}
	if os.Args[1] == "-version" {
		cmd.ExitWithVersion()
	}

	subcommand := filepath.Base(os.Args[1])
	switch subcommand {
	case "untar":
		cli.Run(&extractCmd{mode: unpacker.ModeTar}, subcommand)
	case "ungzip":
		cli.Run(&extractCmd{mode: unpacker.ModeGzip}, subcommand)
	case "ungzip-tar":
		cli.Run(&extractCmd{mode: unpacker.ModeGzipTar}, subcommand)
	case "extract":
		cli.Run(&extractCmd{mode: unpacker.ModeAuto}, subcommand)
	case "batch":
		cli.Run(&batchCmd{}, subcommand)
	default:
		cmd.Exit(cmd.FailCode(cmd.CodeForInvalidArgs, "recognize subcommand:", subcommand, usage))
	}
}
