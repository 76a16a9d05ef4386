// Package lockfile serializes installer runs with an advisory file lock.
package lockfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/cranekit/rimeup/internal/messages"
)

// DefaultPath is where concurrent rimeup runs rendezvous.
const DefaultPath = "/tmp/rimeup.lock"

var flockFn = unix.Flock

// HeldError means another process holds the lock.
type HeldError struct {
	Path string
}

func (e *HeldError) Error() string {
	return fmt.Sprintf(messages.LockHeldFmt, e.Path)
}

// Lock is a held advisory lock. Release it when the run finishes.
type Lock struct {
	file *os.File
}

// Acquire opens or creates path and takes an exclusive lock without waiting.
// A lock held elsewhere yields a HeldError rather than blocking, so a second
// install fails fast instead of queueing behind the first.
func Acquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, &HeldError{Path: path}
		}
		return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := flockFn(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	file := l.file
	l.file = nil
	return file.Close()
}
