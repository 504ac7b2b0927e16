package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/cperrin88/altvsync/pkg/errors"
)

// LockFileName is the advisory lock file created in the output root while a sync runs.
const LockFileName = ".altvsync.lock"

// DirLock holds an advisory lock on an output directory.
type DirLock struct {
	flock *flock.Flock
}

// LockDir takes a non-blocking advisory lock on dir, creating dir if needed.
// It returns errors.ErrOutputLocked if another process already holds the lock.
func LockDir(dir string) (*DirLock, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	fl := flock.New(filepath.Join(dir, LockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !locked {
		return nil, errors.Wrapf(errors.ErrOutputLocked, "%s", dir)
	}

	return &DirLock{flock: fl}, nil
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	// only the holder removes the lock file
	if l == nil || !l.flock.Locked() {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.flock.Path(), err)
	}
	return os.Remove(l.flock.Path())
}
