package installer

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranekit/rimeup/internal/archive"
	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/deps"
	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/lockfile"
	"github.com/cranekit/rimeup/internal/logging"
	"github.com/cranekit/rimeup/internal/sysdir"
	"github.com/cranekit/rimeup/internal/testutil"
)

type fakeRunner struct {
	onPath map[string]string
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if path, ok := r.onPath[name]; ok {
		return path, nil
	}
	return "", errors.New("not found")
}

func (r *fakeRunner) Run(execx.Command) error { return nil }

func (r *fakeRunner) Output(execx.Command) (string, string, error) { return "", "", nil }

func allPresentRunner() *fakeRunner {
	return &fakeRunner{onPath: map[string]string{
		"curl":  "/usr/bin/curl",
		"7z":    "/usr/bin/7z",
		"rsync": "/usr/bin/rsync",
	}}
}

type fakeConfirmer struct {
	approve bool
	err     error
	calls   int
	title   string
}

func (c *fakeConfirmer) Confirm(title, description string) (bool, error) {
	c.calls++
	c.title = title
	return c.approve, c.err
}

// harness stubs the phase seams and records the order they ran in.
type harness struct {
	calls []string

	depsErr    error
	extractDir string
	extractErr error
	syncResult *sysdir.Result
	syncErr    error
	syncedFrom string
	syncedTo   string
}

func stubPhases(t *testing.T) *harness {
	t.Helper()
	h := &harness{syncResult: &sysdir.Result{}}

	origDeps, origExtract, origSync := ensureDepsFn, extractFn, syncFn
	t.Cleanup(func() {
		ensureDepsFn, extractFn, syncFn = origDeps, origExtract, origSync
	})

	ensureDepsFn = func(inst *deps.Installer, required []string) error {
		require.NotNil(t, inst.Runner)
		h.calls = append(h.calls, "deps")
		return h.depsErr
	}
	extractFn = func(ex *archive.Extractor, archivePath, scratchDir string) (string, error) {
		require.NotNil(t, ex.Runner)
		h.calls = append(h.calls, "extract")
		if h.extractErr != nil {
			return "", h.extractErr
		}
		if h.extractDir != "" {
			return h.extractDir, nil
		}
		return filepath.Join(scratchDir, "pkg"), nil
	}
	syncFn = func(s *sysdir.Synchronizer, configDir, targetDir string) (*sysdir.Result, error) {
		h.calls = append(h.calls, "sync")
		h.syncedFrom = configDir
		h.syncedTo = targetDir
		if h.syncErr != nil {
			return nil, h.syncErr
		}
		return h.syncResult, nil
	}
	return h
}

func testOptions(t *testing.T) (Options, *bytes.Buffer, *fakeConfirmer) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Archive.Path = filepath.Join(root, "xhup.zip")
	cfg.Archive.ScratchDir = filepath.Join(root, "extracted")
	cfg.Install.TargetDir = filepath.Join(root, "rime-data")
	cfg.Install.BackupPrefix = filepath.Join(root, "rime-backup")
	cfg.Logging.Dir = filepath.Join(root, "logs")

	out := &bytes.Buffer{}
	confirmer := &fakeConfirmer{approve: true}
	return Options{
		Config:    cfg,
		Runner:    allPresentRunner(),
		Log:       logging.Discard(),
		Out:       out,
		Confirmer: confirmer,
		LockPath:  filepath.Join(root, "rimeup.lock"),
	}, out, confirmer
}

func TestRunSequence(t *testing.T) {
	h := stubPhases(t)
	opts, out, confirmer := testOptions(t)
	h.syncResult = &sysdir.Result{BackupDir: "/usr/share/rime-backup-20260314_092653"}

	require.NoError(t, Run(opts))

	assert.Equal(t, []string{"deps", "extract", "sync"}, h.calls)
	assert.Equal(t, 1, confirmer.calls)
	assert.Contains(t, confirmer.title, opts.Config.Install.TargetDir)
	assert.Equal(t, filepath.Join(opts.Config.Archive.ScratchDir, "pkg"), h.syncedFrom)
	assert.Equal(t, opts.Config.Install.TargetDir, h.syncedTo)

	notice := out.String()
	assert.Contains(t, notice, "Installation complete.")
	assert.Contains(t, notice, "/usr/share/rime-backup-20260314_092653")
	assert.Contains(t, notice, "重新部署")
}

func TestRunNoBackupNotice(t *testing.T) {
	h := stubPhases(t)
	opts, out, _ := testOptions(t)
	h.syncResult = &sysdir.Result{}

	require.NoError(t, Run(opts))
	assert.NotContains(t, out.String(), "Previous contents saved")
}

func TestRunYesSkipsConfirmation(t *testing.T) {
	h := stubPhases(t)
	opts, _, confirmer := testOptions(t)
	opts.Yes = true

	require.NoError(t, Run(opts))
	assert.Zero(t, confirmer.calls)
	assert.Equal(t, []string{"deps", "extract", "sync"}, h.calls)
}

func TestRunSkipDeps(t *testing.T) {
	h := stubPhases(t)
	opts, _, _ := testOptions(t)
	opts.SkipDeps = true
	opts.Yes = true

	require.NoError(t, Run(opts))
	assert.Equal(t, []string{"extract", "sync"}, h.calls)
}

func TestRunDeclined(t *testing.T) {
	h := stubPhases(t)
	opts, out, confirmer := testOptions(t)
	confirmer.approve = false

	err := Run(opts)

	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, []string{"deps", "extract"}, h.calls, "a decline stops before the mirror")
	assert.NotContains(t, out.String(), "Installation complete.")
}

func TestRunConfirmerError(t *testing.T) {
	h := stubPhases(t)
	opts, _, confirmer := testOptions(t)
	confirmer.err = errors.New("no terminal")

	err := Run(opts)

	require.EqualError(t, err, "no terminal")
	assert.NotContains(t, h.calls, "sync")
}

func TestRunDryRunStopsBeforeConfirmation(t *testing.T) {
	h := stubPhases(t)
	opts, _, confirmer := testOptions(t)
	opts.DryRun = true

	require.NoError(t, Run(opts))

	assert.Equal(t, []string{"extract"}, h.calls, "a dry run installs nothing and never mirrors")
	assert.Zero(t, confirmer.calls)
}

func TestRunDryRunReportsMissingDeps(t *testing.T) {
	h := stubPhases(t)
	opts, _, _ := testOptions(t)
	opts.DryRun = true
	opts.Runner = &fakeRunner{onPath: map[string]string{"curl": "/usr/bin/curl"}}

	require.NoError(t, Run(opts))
	assert.NotContains(t, h.calls, "deps", "dry run never invokes the package manager")
}

func TestRunDepsFailureAborts(t *testing.T) {
	h := stubPhases(t)
	opts, _, _ := testOptions(t)
	h.depsErr = &deps.NoManagerError{Missing: []string{"7z"}}

	err := Run(opts)

	var noMgr *deps.NoManagerError
	require.True(t, errors.As(err, &noMgr))
	assert.Equal(t, []string{"deps"}, h.calls)
}

func TestRunExtractFailureAborts(t *testing.T) {
	h := stubPhases(t)
	opts, _, confirmer := testOptions(t)
	h.extractErr = archive.ErrNoConfigDir

	err := Run(opts)

	assert.ErrorIs(t, err, archive.ErrNoConfigDir)
	assert.Equal(t, []string{"deps", "extract"}, h.calls)
	assert.Zero(t, confirmer.calls)
}

func TestRunSyncFailureAborts(t *testing.T) {
	h := stubPhases(t)
	opts, out, _ := testOptions(t)
	h.syncErr = &sysdir.MirrorError{Err: errors.New("exit status 11")}

	err := Run(opts)

	var mirrorErr *sysdir.MirrorError
	require.True(t, errors.As(err, &mirrorErr))
	assert.NotContains(t, out.String(), "Installation complete.")
}

func TestRunLockHeld(t *testing.T) {
	h := stubPhases(t)
	opts, _, _ := testOptions(t)

	held, err := lockfile.Acquire(opts.LockPath)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	runErr := Run(opts)

	var heldErr *lockfile.HeldError
	require.True(t, errors.As(runErr, &heldErr))
	assert.Empty(t, h.calls, "nothing runs while another install holds the lock")
}

func TestRunReleasesLock(t *testing.T) {
	stubPhases(t)
	opts, _, _ := testOptions(t)
	opts.Yes = true

	require.NoError(t, Run(opts))

	// Re-acquiring proves the first run released its lock.
	lock, err := lockfile.Acquire(opts.LockPath)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}

func TestRunPlanPreviewOnOut(t *testing.T) {
	h := stubPhases(t)
	opts, out, _ := testOptions(t)
	opts.Yes = true

	pkg := filepath.Join(t.TempDir(), "pkg")
	testutil.WriteTree(t, pkg, map[string]string{"default.yaml": "schema"})
	h.extractDir = pkg

	require.NoError(t, Run(opts))

	assert.Contains(t, out.String(), "Install plan")
	assert.Contains(t, out.String(), "+default.yaml  6 bytes")
}
