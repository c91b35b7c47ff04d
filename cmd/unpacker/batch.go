package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/buildpacks/unpacker"
	"github.com/buildpacks/unpacker/cmd"
	"github.com/buildpacks/unpacker/cmd/unpacker/cli"
)

type batchCmd struct {
	configPath  string
	concurrency int

	batch unpacker.BatchFile
}

// DefineFlags defines the flags that are considered valid and reads their values (if provided).
func (b *batchCmd) DefineFlags() {
	cli.FlagConfig(&b.configPath)
	cli.FlagConcurrency(&b.concurrency)
}

// Args validates arguments and flags, and fills in default values.
func (b *batchCmd) Args(nargs int, _ []string) error {
	if nargs != 0 {
		return cmd.FailErrCode(fmt.Errorf("received unexpected arguments"), cmd.CodeForInvalidArgs, "parse arguments")
	}
	if b.configPath == "" {
		return cmd.FailErrCode(fmt.Errorf("-config is required"), cmd.CodeForInvalidArgs, "parse arguments")
	}
	var err error
	if b.batch, err = unpacker.ReadBatchFile(b.configPath); err != nil {
		return cmd.FailErr(err, "read batch file")
	}
	if b.concurrency == 0 {
		b.concurrency = b.batch.Concurrency
	}
	return nil
}

func (b *batchCmd) Exec() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := unpacker.NewExtractor(cmd.DefaultLogger)
	outcomes, err := unpacker.RunBatch(ctx, extractor, b.batch.Jobs, b.concurrency)
	if err != nil {
		return cmd.FailErr(err, "run batch")
	}

	for _, o := range outcomes {
		if o.Err != nil {
			cmd.DefaultLogger.Errorf("[%s] '%s': %s: %s", o.ID, o.Job.Source, unpacker.TypeOf(o.Err), o.Err)
			continue
		}
		cmd.DefaultLogger.Infof("[%s] Extracted '%s' to '%s'", o.ID, o.Job.Source, o.Result.Path)
	}
	if failed := unpacker.Failed(outcomes); failed > 0 {
		return cmd.FailErrCode(fmt.Errorf("%d of %d jobs failed", failed, len(outcomes)), cmd.CodeForFailed, "run batch")
	}
	return nil
}
