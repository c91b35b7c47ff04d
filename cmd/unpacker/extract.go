package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/buildpacks/unpacker"
	"github.com/buildpacks/unpacker/cmd"
	"github.com/buildpacks/unpacker/cmd/unpacker/cli"
)

type extractCmd struct {
	mode unpacker.Mode

	overwrite  bool
	jsonOutput bool
	req        unpacker.Request
}

type failureOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DefineFlags defines the flags that are considered valid and reads their values (if provided).
func (e *extractCmd) DefineFlags() {
	cli.FlagOverwrite(&e.overwrite)
	cli.FlagJSON(&e.jsonOutput)
}

// Args validates arguments and flags, and fills in default values.
func (e *extractCmd) Args(nargs int, args []string) error {
	if nargs != 2 {
		return cmd.FailErrCode(fmt.Errorf("received %d arguments, but expected 2: <source> <destination>", nargs), cmd.CodeForInvalidArgs, "parse arguments")
	}
	e.req = unpacker.Request{Source: args[0], Destination: args[1], Overwrite: e.overwrite}
	return nil
}

func (e *extractCmd) Exec() error {
	extractor := unpacker.NewExtractor(cmd.DefaultLogger)
	res, err := extractor.Extract(e.req, e.mode)
	if e.jsonOutput {
		if printErr := printResult(res, err); printErr != nil {
			return cmd.FailErr(printErr, "write result")
		}
	}
	if err != nil {
		return cmd.FailErr(err, "extract", e.req.Source)
	}
	if !e.jsonOutput {
		cmd.DefaultLogger.Infof("Extracted '%s' to '%s'", e.req.Source, res.Path)
	}
	return nil
}

func printResult(res unpacker.Result, err error) error {
	var v any = res
	if err != nil {
		v = failureOutput{Code: string(unpacker.TypeOf(err)), Message: err.Error()}
	}
	if encErr := json.NewEncoder(cmd.Stdout).Encode(v); encErr != nil {
		return errors.Wrap(encErr, "encode result")
	}
	return nil
}
