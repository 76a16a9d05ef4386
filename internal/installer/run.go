// Package installer sequences a full rimeup run: single-run lock,
// dependency resolution, archive extraction, confirmation, and the mirror
// into the system directory. Steps run strictly in order and the first
// failure aborts the run.
package installer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/cranekit/rimeup/internal/archive"
	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/deps"
	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/lockfile"
	"github.com/cranekit/rimeup/internal/messages"
	"github.com/cranekit/rimeup/internal/prompt"
	"github.com/cranekit/rimeup/internal/sysdir"
)

// ErrDeclined is returned when the user answers the confirmation with Abort.
var ErrDeclined = errors.New(messages.InstallerDeclined)

// Options carries everything Run needs. Out receives user-facing output
// that does not belong in the log, such as the plan preview and the final
// notice.
type Options struct {
	Config    *config.Config
	Runner    execx.Runner
	Log       *log.Logger
	Out       io.Writer
	Confirmer prompt.Confirmer

	// LockPath overrides the run lock location; empty means
	// lockfile.DefaultPath.
	LockPath string

	SkipDeps bool
	DryRun   bool
	Yes      bool
}

var (
	acquireLockFn = lockfile.Acquire
	ensureDepsFn  = func(inst *deps.Installer, required []string) error {
		return inst.Ensure(required)
	}
	extractFn = func(ex *archive.Extractor, archivePath, scratchDir string) (string, error) {
		return ex.Extract(archivePath, scratchDir)
	}
	syncFn = func(s *sysdir.Synchronizer, configDir, targetDir string) (*sysdir.Result, error) {
		return s.Sync(configDir, targetDir)
	}
)

// Run executes the install sequence. A dry run stops after the plan
// preview, before the confirmation and before any privileged command.
func Run(opts Options) error {
	lockPath := opts.LockPath
	if lockPath == "" {
		lockPath = lockfile.DefaultPath
	}
	lock, err := acquireLockFn(lockPath)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	cfg := opts.Config
	if opts.SkipDeps {
		opts.Log.Info(messages.InstallerSkipDeps)
	} else if err := ensureDependencies(opts); err != nil {
		opts.Log.Error(messages.InstallerDepsFailed, "error", err)
		return err
	}

	opts.Log.Info(messages.InstallerPhaseExtract, "archive", cfg.Archive.Path)
	ex := &archive.Extractor{Runner: opts.Runner, Log: opts.Log}
	configDir, err := extractFn(ex, cfg.Archive.Path, cfg.Archive.ScratchDir)
	if err != nil {
		opts.Log.Error(messages.InstallerAcquireFailed, "error", err)
		return err
	}

	printPlan(opts, configDir)

	if opts.DryRun {
		opts.Log.Info(messages.InstallerDryRun)
		return nil
	}

	if !opts.Yes {
		title := fmt.Sprintf(messages.InstallerConfirmTitleFmt, cfg.Install.TargetDir)
		ok, err := opts.Confirmer.Confirm(title, messages.InstallerConfirmDescription)
		if err != nil {
			return err
		}
		if !ok {
			opts.Log.Warn(messages.InstallerDeclinedLog)
			return ErrDeclined
		}
	}

	opts.Log.Info(messages.InstallerPhaseSync, "target", cfg.Install.TargetDir)
	syncer := &sysdir.Synchronizer{
		Runner:       opts.Runner,
		Log:          opts.Log,
		BackupPrefix: cfg.Install.BackupPrefix,
	}
	result, err := syncFn(syncer, configDir, cfg.Install.TargetDir)
	if err != nil {
		opts.Log.Error(messages.InstallerSyncFailed, "error", err)
		return err
	}

	opts.Log.Info(messages.InstallerDone, "target", cfg.Install.TargetDir)
	printSuccess(opts.Out, result)
	return nil
}

// ensureDependencies installs missing required executables. In a dry run
// nothing is installed; missing dependencies are only reported, and a later
// step fails naturally if one of them was needed for extraction.
func ensureDependencies(opts Options) error {
	cfg := opts.Config
	opts.Log.Info(messages.InstallerPhaseDeps, "required", strings.Join(cfg.Deps.Required, ", "))
	if opts.DryRun {
		checker := &deps.Checker{Runner: opts.Runner, Log: opts.Log}
		if missing := checker.Missing(cfg.Deps.Required); len(missing) > 0 {
			opts.Log.Info(messages.InstallerDryRunDeps, "missing", strings.Join(missing, ", "))
		}
		return nil
	}
	inst := &deps.Installer{
		Runner:   opts.Runner,
		Log:      opts.Log,
		Managers: deps.ManagersFrom(cfg.Deps.Managers),
	}
	return ensureDepsFn(inst, cfg.Deps.Required)
}

// printPlan previews the mirror as a manifest diff. Preview failures do not
// abort the install; the plan is advisory.
func printPlan(opts Options, configDir string) {
	plan, err := BuildPlan(configDir, opts.Config.Install.TargetDir)
	if err != nil {
		opts.Log.Warn(messages.InstallerPlanFailed, "error", err)
		return
	}
	fmt.Fprintln(opts.Out)
	fmt.Fprint(opts.Out, plan)
	fmt.Fprintln(opts.Out)
}

func printSuccess(out io.Writer, result *sysdir.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, color.GreenString(messages.InstallerSuccessNotice))
	if result.BackupDir != "" {
		fmt.Fprintf(out, messages.InstallerBackupNoticeFmt, result.BackupDir)
	}
	fmt.Fprintln(out, messages.InstallerRedeployHint)
}
