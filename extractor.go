package unpacker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/unpacker/archive"
	"github.com/buildpacks/unpacker/log"
)

type State string

const (
	StatePending       State = "pending"
	StateReconciling   State = "reconciling"
	StateDecoding      State = "decoding"
	StateMaterializing State = "materializing"
	StateSucceeded     State = "succeeded"
	StateFailed        State = "failed"
)

// Extractor runs extraction requests. It holds no per-request state and
// may be shared, but two requests must not target the same destination
// at the same time.
type Extractor struct {
	Logger log.Logger
}

func NewExtractor(logger log.Logger) *Extractor {
	return &Extractor{Logger: logger}
}

// Untar extracts a plain tar archive into the directory req.Destination.
func (e *Extractor) Untar(req Request) (Result, error) {
	return e.Extract(req, ModeTar)
}

// Ungzip decompresses req.Source into the single file req.Destination.
func (e *Extractor) Ungzip(req Request) (Result, error) {
	return e.Extract(req, ModeGzip)
}

// UngzipTar extracts a gzip compressed tar archive into the directory
// req.Destination.
func (e *Extractor) UngzipTar(req Request) (Result, error) {
	return e.Extract(req, ModeGzipTar)
}

// Extract runs req through the pipeline for mode. Every returned error is
// an *Error. On failure, entries written before the failure stay on disk.
func (e *Extractor) Extract(req Request, mode Mode) (Result, error) {
	timer := log.NewFuncTimer("extract "+mode.String(), e.Logger)
	defer timer.RecordEnd()

	res, err := e.extract(req, mode)
	if err != nil {
		uerr := classify(err)
		e.enter(StateFailed, "%s: %s", uerr.Type, uerr)
		return Result{}, uerr
	}
	e.enter(StateSucceeded, "'%s'", res.Path)
	return res, nil
}

func (e *Extractor) extract(req Request, mode Mode) (Result, error) {
	e.enter(StatePending, "%s '%s' -> '%s' (overwrite: %t)", mode, req.Source, req.Destination, req.Overwrite)
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	dest, err := filepath.Abs(req.Destination)
	if err != nil {
		return Result{}, errors.Wrap(err, "resolve destination")
	}
	req.Destination = dest
	if mode == ModeAuto {
		detected, err := DetectMode(req.Source)
		if err != nil {
			return Result{}, err
		}
		e.Logger.Debugf("Detected %s source", detected)
		mode = detected
	}

	var run func(Request) error
	switch mode {
	case ModeTar:
		run = e.untar
	case ModeGzip:
		run = e.ungzip
	case ModeGzipTar:
		run = e.ungzipTar
	default:
		return Result{}, NewError(fmt.Errorf("unsupported mode %s", mode), ErrTypeInvalidRequest)
	}

	e.enter(StateReconciling, "'%s'", req.Destination)
	reconciler := &Reconciler{Logger: e.Logger}
	if err := reconciler.Reconcile(req, mode.DestinationIsDir()); err != nil {
		return Result{}, err
	}

	if err := run(req); err != nil {
		return Result{}, err
	}
	return Result{Path: req.Destination}, nil
}

func (e *Extractor) untar(req Request) error {
	src, err := os.Open(req.Source)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer src.Close()

	e.enter(StateDecoding, "tar")
	return e.materialize(archive.NewEntryReader(src), req.Destination)
}

func (e *Extractor) ungzipTar(req Request) error {
	src, err := os.Open(req.Source)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer src.Close()

	e.enter(StateDecoding, "gzip, tar")
	gz, err := archive.NewGzipReader(src)
	if err != nil {
		return err
	}
	defer gz.Close()

	if err := e.materialize(archive.NewEntryReader(gz), req.Destination); err != nil {
		if gzErr := gz.Err(); gzErr != nil {
			return gzErr
		}
		return err
	}
	return gz.Drain()
}

func (e *Extractor) ungzip(req Request) error {
	src, err := os.Open(req.Source)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer src.Close()

	e.enter(StateDecoding, "gzip")
	gz, err := archive.NewGzipReader(src)
	if err != nil {
		return err
	}
	defer gz.Close()

	e.enter(StateMaterializing, "'%s'", req.Destination)
	n, err := archive.WriteFile(gz, req.Destination, make([]byte, 32*1024))
	if err != nil {
		if rmErr := os.Remove(req.Destination); rmErr != nil && !os.IsNotExist(rmErr) {
			e.Logger.Warnf("Failed to remove incomplete output '%s': %s", req.Destination, rmErr)
		}
		return errors.Wrapf(err, "write '%s'", req.Destination)
	}
	e.Logger.Debugf("Wrote %d bytes", n)
	return nil
}

func (e *Extractor) materialize(er *archive.EntryReader, dest string) error {
	e.enter(StateMaterializing, "'%s'", dest)
	stats, err := archive.Extract(er, dest, e.Logger)
	e.Logger.Debugf("Extracted %d directories, %d files (%d bytes), skipped %d entries", stats.Dirs, stats.Files, stats.Bytes, stats.Skipped)
	return err
}

func (e *Extractor) enter(state State, format string, v ...any) {
	e.Logger.Debugf("[%s] "+format, append([]any{state}, v...)...)
}
