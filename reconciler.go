package unpacker

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/unpacker/log"
)

// Reconciler validates a request against the filesystem and prepares the
// destination according to the overwrite policy.
type Reconciler struct {
	Logger log.Logger
}

// Reconcile fails with ErrTypeSourceMissing before touching the
// destination. When destIsDir is set the destination root exists as a
// directory once Reconcile returns nil; otherwise its parent does and
// the destination itself is absent.
func (r *Reconciler) Reconcile(req Request, destIsDir bool) error {
	if err := req.validate(); err != nil {
		return err
	}

	if _, err := os.Stat(req.Source); err != nil {
		if os.IsNotExist(err) {
			return NewError(errors.Errorf("source '%s' does not exist", req.Source), ErrTypeSourceMissing)
		}
		return NewError(errors.Wrap(err, "stat source"), ErrTypeIO)
	}

	_, err := os.Lstat(req.Destination)
	switch {
	case err == nil && !req.Overwrite:
		return NewError(errors.Errorf("destination '%s' already exists", req.Destination), ErrTypeDestinationExists)
	case err == nil:
		r.Logger.Debugf("Removing existing destination '%s'", req.Destination)
		if err := removeTree(req.Destination); err != nil {
			return NewError(err, ErrTypeCleanupFailed)
		}
	case !os.IsNotExist(err):
		return NewError(errors.Wrap(err, "stat destination"), ErrTypeIO)
	}

	dir := filepath.Dir(req.Destination)
	if destIsDir {
		dir = req.Destination
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return NewError(errors.Wrapf(err, "create directory '%s'", dir), ErrTypeIO)
	}
	return nil
}

// removeTree deletes path depth-first, children before their parent, and
// stops at the first entry it cannot remove.
func removeTree(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to delete '%s'", path)
	}
	if fi.IsDir() {
		children, err := os.ReadDir(path)
		if err != nil {
			return errors.Wrapf(err, "failed to delete '%s'", path)
		}
		for _, child := range children {
			if err := removeTree(filepath.Join(path, child.Name())); err != nil {
				return err
			}
		}
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "failed to delete '%s'", path)
	}
	return nil
}
