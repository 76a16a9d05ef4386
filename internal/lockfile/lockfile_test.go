package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/sys/unix"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rimeup.lock")

	lock, err := Acquire(path)
	require.NoError(t, err)
	require.NotNil(t, lock)
	assert.FileExists(t, path)
	require.NoError(t, lock.Release())
}

// Locks acquired through separate opens of the same file conflict even
// within one process, so the exclusion is observable in a single test.
func TestAcquireConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rimeup.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	defer func() { _ = first.Release() }()

	_, err = Acquire(path)
	var held *HeldError
	require.True(t, errors.As(err, &held))
	assert.Equal(t, path, held.Path)
	assert.Contains(t, err.Error(), "another rimeup run is active")
}

func TestAcquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rimeup.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquireOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "rimeup.lock")

	_, err := Acquire(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAcquireFlockFailure(t *testing.T) {
	orig := flockFn
	t.Cleanup(func() { flockFn = orig })
	flockFn = func(fd int, how int) error { return unix.EIO }

	_, err := Acquire(filepath.Join(t.TempDir(), "rimeup.lock"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire lock")

	var held *HeldError
	assert.False(t, errors.As(err, &held), "an I/O failure is not a held lock")
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	require.NoError(t, lock.Release())
}

func TestReleaseTwice(t *testing.T) {
	lock, err := Acquire(filepath.Join(t.TempDir(), "rimeup.lock"))
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
}
