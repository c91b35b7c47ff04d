package unpacker

import (
	"context"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -package testmock -destination testmock/runner.go github.com/buildpacks/unpacker Runner

// Runner runs a single extraction. *Extractor implements it.
type Runner interface {
	Extract(req Request, mode Mode) (Result, error)
}

// Job is one [[extract]] entry of a batch file.
type Job struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
	Mode        Mode   `toml:"mode"`
	Overwrite   bool   `toml:"overwrite"`
}

func (j Job) Request() Request {
	return Request{Source: j.Source, Destination: j.Destination, Overwrite: j.Overwrite}
}

type BatchFile struct {
	Concurrency int   `toml:"concurrency"`
	Jobs        []Job `toml:"extract"`
}

// ReadBatchFile decodes the TOML batch file at path. Relative source and
// destination paths are resolved against the directory holding the file.
func ReadBatchFile(path string) (BatchFile, error) {
	var bf BatchFile
	if _, err := toml.DecodeFile(path, &bf); err != nil {
		return BatchFile{}, NewError(errors.Wrapf(err, "read batch file '%s'", path), ErrTypeInvalidRequest)
	}
	base := filepath.Dir(path)
	for i := range bf.Jobs {
		bf.Jobs[i].Source = resolve(base, bf.Jobs[i].Source)
		bf.Jobs[i].Destination = resolve(base, bf.Jobs[i].Destination)
	}
	return bf, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Outcome is the result of one batch job. Err is nil on success.
type Outcome struct {
	ID     string
	Job    Job
	Result Result
	Err    error
}

// RunBatch runs jobs with at most concurrency extractions in flight
// (unbounded when concurrency < 1). A failed job does not stop the others.
// Outcomes are returned in the order of jobs. Jobs not yet started when
// ctx is done are reported with ctx.Err().
func RunBatch(ctx context.Context, runner Runner, jobs []Job, concurrency int) ([]Outcome, error) {
	if err := checkDestinations(jobs); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(jobs))
	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, job := range jobs {
		outcomes[i] = Outcome{ID: uuid.NewString(), Job: job}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = runner.Extract(job.Request(), job.Mode)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes, nil
}

// checkDestinations rejects batches in which two jobs share a destination.
func checkDestinations(jobs []Job) error {
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		key := filepath.Clean(job.Destination)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if prev, ok := seen[key]; ok {
			return NewError(errors.Errorf("jobs %d and %d share destination '%s'", prev, i, job.Destination), ErrTypeInvalidRequest)
		}
		seen[key] = i
	}
	return nil
}

// Failed counts the outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
