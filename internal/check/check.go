// Package check inspects the host before an install run: required
// executables, the archive, writable directories, and elevation.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/deps"
	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

// Status is the outcome class of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is one check outcome, rendered by the check command.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

var (
	geteuidFn = os.Geteuid
	accessFn  = unix.Access
)

// Run executes every host check in report order.
func Run(cfg *config.Config, runner execx.Runner, binDir string) []Result {
	results := []Result{CheckManager(cfg, runner, binDir)}
	results = append(results, CheckDependencies(cfg, runner, binDir)...)
	results = append(results,
		CheckArchive(cfg.Archive.Path),
		CheckScratch(cfg.Archive.ScratchDir),
		CheckLogDir(cfg.Logging.Dir),
		CheckElevation(runner),
		CheckTarget(cfg.Install.TargetDir),
	)
	return results
}

// CheckManager reports which package manager would install missing
// dependencies. Absence is a warning while every required executable is
// present, and a failure once one is missing, since `rimeup install` would
// have no way to add it.
func CheckManager(cfg *config.Config, runner execx.Runner, binDir string) Result {
	resolver := deps.Resolver{BinDir: binDir}
	if mgr, ok := resolver.Resolve(deps.ManagersFrom(cfg.Deps.Managers)); ok {
		return Result{
			Status:    StatusOK,
			CheckName: messages.CheckNameManager,
			Message:   fmt.Sprintf(messages.CheckManagerFoundFmt, mgr.Name),
		}
	}
	names := make([]string, 0, len(cfg.Deps.Managers))
	for _, m := range cfg.Deps.Managers {
		names = append(names, m.Name)
	}
	result := Result{
		Status:    StatusWarn,
		CheckName: messages.CheckNameManager,
		Message:   fmt.Sprintf(messages.CheckManagerNoneFmt, strings.Join(names, ", ")),
	}
	if len(missingRequired(cfg, runner)) > 0 {
		result.Status = StatusFail
		result.Recommendation = messages.CheckManagerNoneRecommend
	}
	return result
}

// CheckDependencies probes PATH for every required executable. A missing
// executable fails the check; the recommendation points at `rimeup install`
// when a package manager can add it, and at manual installation otherwise.
func CheckDependencies(cfg *config.Config, runner execx.Runner, binDir string) []Result {
	resolver := deps.Resolver{BinDir: binDir}
	mgr, haveManager := resolver.Resolve(deps.ManagersFrom(cfg.Deps.Managers))

	results := make([]Result, 0, len(cfg.Deps.Required))
	for _, name := range cfg.Deps.Required {
		path, err := runner.LookPath(name)
		if err != nil {
			recommendation := fmt.Sprintf(messages.CheckDepManualRecommendFmt, name)
			if haveManager {
				recommendation = fmt.Sprintf(messages.CheckDepInstallRecommendFmt, name, mgr.Name)
			}
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.CheckNameDependency,
				Message:        fmt.Sprintf(messages.CheckDepMissingFmt, name),
				Recommendation: recommendation,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.CheckNameDependency,
			Message:   fmt.Sprintf(messages.CheckDepFoundFmt, name, path),
		})
	}
	return results
}

// missingRequired returns the required executables absent from PATH, in
// configured order.
func missingRequired(cfg *config.Config, runner execx.Runner) []string {
	var missing []string
	for _, name := range cfg.Deps.Required {
		if _, err := runner.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckArchive verifies the schema archive is a readable regular file.
func CheckArchive(path string) Result {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.CheckNameArchive,
			Message:        fmt.Sprintf(messages.CheckArchiveMissingFmt, path),
			Recommendation: messages.CheckArchiveMissingRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.CheckNameArchive,
		Message:   fmt.Sprintf(messages.CheckArchiveFoundFmt, path, info.Size()),
	}
}

// CheckScratch verifies the scratch directory can be created and written.
func CheckScratch(dir string) Result {
	if err := writableDir(dir); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.CheckNameScratch,
			Message:        fmt.Sprintf(messages.CheckScratchNotWritableFmt, dir, err),
			Recommendation: messages.CheckScratchRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.CheckNameScratch,
		Message:   fmt.Sprintf(messages.CheckScratchWritableFmt, dir),
	}
}

// CheckLogDir verifies the log directory can be created and written. An
// unwritable directory is only a warning: the run log can be pointed
// elsewhere with --log-dir.
func CheckLogDir(dir string) Result {
	if err := writableDir(dir); err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.CheckNameLogDir,
			Message:        fmt.Sprintf(messages.CheckLogDirNotWritableFmt, dir, err),
			Recommendation: messages.CheckLogDirRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.CheckNameLogDir,
		Message:   fmt.Sprintf(messages.CheckLogDirWritableFmt, dir),
	}
}

// CheckElevation verifies privileged commands can run: either rimeup is
// already root or sudo is on PATH.
func CheckElevation(runner execx.Runner) Result {
	if geteuidFn() == 0 {
		return Result{
			Status:    StatusOK,
			CheckName: messages.CheckNameElevation,
			Message:   messages.CheckElevationRoot,
		}
	}
	if path, err := runner.LookPath("sudo"); err == nil {
		return Result{
			Status:    StatusOK,
			CheckName: messages.CheckNameElevation,
			Message:   fmt.Sprintf(messages.CheckElevationSudoFmt, path),
		}
	}
	return Result{
		Status:         StatusFail,
		CheckName:      messages.CheckNameElevation,
		Message:        messages.CheckElevationMissing,
		Recommendation: messages.CheckElevationRecommend,
	}
}

// CheckTarget reports the state of the install target.
func CheckTarget(dir string) Result {
	if _, err := os.Stat(dir); err != nil {
		return Result{
			Status:    StatusOK,
			CheckName: messages.CheckNameTarget,
			Message:   fmt.Sprintf(messages.CheckTargetAbsentFmt, dir),
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.CheckNameTarget,
			Message:   fmt.Sprintf(messages.CheckTargetUnreadableFmt, dir, err),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.CheckNameTarget,
		Message:   fmt.Sprintf(messages.CheckTargetStateFmt, dir, len(entries)),
	}
}

// writableDir probes the nearest existing ancestor of dir for write access,
// since the directory itself may legitimately not exist yet.
func writableDir(dir string) error {
	probe := dir
	for {
		if _, err := os.Stat(probe); err == nil {
			return accessFn(probe, unix.W_OK)
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return accessFn(probe, unix.W_OK)
		}
		probe = parent
	}
}
