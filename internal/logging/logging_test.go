package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNamesFileAfterRunStart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	run, err := Open(dir, bytes.NewBuffer(nil), start)
	require.NoError(t, err)
	defer func() { _ = run.Close() }()

	assert.Equal(t, filepath.Join(dir, "rimeup_20260314_092653.log"), run.Path)
	_, err = os.Stat(run.Path)
	assert.NoError(t, err)
}

func TestOpenWritesToConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	console := bytes.NewBuffer(nil)

	run, err := Open(dir, console, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	run.Info("mirroring configuration into target", "target", "/usr/share/rime-data")
	require.NoError(t, run.Close())

	fileData, err := os.ReadFile(run.Path)
	require.NoError(t, err)

	assert.Contains(t, console.String(), "mirroring configuration into target")
	assert.Contains(t, console.String(), "/usr/share/rime-data")
	assert.Equal(t, console.String(), string(fileData))
}

func TestOpenAppendsAcrossReopens(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := Open(dir, bytes.NewBuffer(nil), start)
	require.NoError(t, err)
	first.Info("first run")
	require.NoError(t, first.Close())

	second, err := Open(dir, bytes.NewBuffer(nil), start)
	require.NoError(t, err)
	second.Info("second run")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestCloseIsIdempotent(t *testing.T) {
	run, err := Open(t.TempDir(), bytes.NewBuffer(nil), time.Now())
	require.NoError(t, err)
	require.NoError(t, run.Close())
	require.NoError(t, run.Close())
}

func TestOpenRejectsUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory modes do not restrict root")
	}
	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o500))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	_, err := Open(filepath.Join(parent, "logs"), bytes.NewBuffer(nil), time.Now())
	assert.Error(t, err)
}
