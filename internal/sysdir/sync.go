// Package sysdir mirrors an extracted configuration tree into the system
// Rime data directory, backing up whatever was installed before.
package sysdir

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

const backupTimestampLayout = "20060102_150405"

// Rime ships UTF-8 Chinese filenames; the mirror runs under a matching
// locale so rsync's name conversion leaves them intact.
var mirrorLocale = []string{"LANG=zh_CN.UTF-8", "LC_ALL=zh_CN.UTF-8"}

// Permission classes reported by PermError.
const (
	PermClassDirectories = "directories"
	PermClassFiles       = "files"
)

// SourceError reports a missing configuration source directory.
type SourceError struct {
	Path string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf(messages.SysdirSourceMissingFmt, e.Path)
}

// StepError reports a failed preparation step such as directory creation or
// the backup copy.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf(messages.SysdirStepFailedFmt, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// MirrorError reports an rsync run that exited non-zero. Both output streams
// are kept for diagnosis.
type MirrorError struct {
	Source string
	Target string
	Stdout string
	Stderr string
	Err    error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf(messages.SysdirMirrorFailedFmt, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *MirrorError) Unwrap() error { return e.Err }

// PermError reports a failed permission normalization pass.
type PermError struct {
	Class string
	Err   error
}

func (e *PermError) Error() string {
	return fmt.Sprintf(messages.SysdirPermFailedFmt, e.Class, e.Err)
}

func (e *PermError) Unwrap() error { return e.Err }

// Synchronizer replaces the target directory's contents with a configuration
// tree, keeping a timestamped backup of the previous installation.
type Synchronizer struct {
	Runner       execx.Runner
	Log          *log.Logger
	BackupPrefix string

	// Now stamps backup directory names; nil means time.Now.
	Now func() time.Time
}

// Result describes what a Sync run did.
type Result struct {
	// BackupDir is where the previous installation was copied, or empty
	// when there was nothing to back up.
	BackupDir string
}

// Sync mirrors configDir into targetDir. An existing non-empty target is
// copied to <BackupPrefix>-<timestamp> first, then the target becomes an
// exact mirror of configDir and its permissions are normalized.
func (s *Synchronizer) Sync(configDir, targetDir string) (*Result, error) {
	if _, err := os.Stat(configDir); err != nil {
		return nil, &SourceError{Path: configDir}
	}

	res := &Result{}
	if _, err := os.Stat(targetDir); err == nil {
		s.Log.Info(messages.SysdirTargetExists, "path", targetDir)
		backupDir := s.BackupPrefix + "-" + s.now().Format(backupTimestampLayout)
		if err := s.mkdirElevated(backupDir); err != nil {
			return nil, &StepError{Step: messages.SysdirStepBackupDir, Err: err}
		}
		entries, err := os.ReadDir(targetDir)
		if err != nil {
			return nil, fmt.Errorf(messages.SysdirReadTargetFmt, targetDir, err)
		}
		if len(entries) > 0 {
			s.Log.Info(messages.SysdirBackingUp, "from", targetDir, "to", backupDir)
			if err := s.mirror(targetDir, backupDir); err != nil {
				return nil, &StepError{Step: messages.SysdirStepBackupCopy, Err: err}
			}
			res.BackupDir = backupDir
		} else {
			s.Log.Info(messages.SysdirBackupEmpty, "path", targetDir)
		}
	} else {
		s.Log.Info(messages.SysdirTargetNew, "path", targetDir)
	}

	if err := s.mkdirElevated(targetDir); err != nil {
		return nil, &StepError{Step: messages.SysdirStepTargetDir, Err: err}
	}
	s.Log.Info(messages.SysdirMirroring, "from", configDir, "to", targetDir)
	if err := s.mirror(configDir, targetDir); err != nil {
		return nil, err
	}
	if err := s.fixPermissions(targetDir); err != nil {
		return nil, err
	}
	s.Log.Info(messages.SysdirDone, "path", targetDir)
	return res, nil
}

func (s *Synchronizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Synchronizer) mkdirElevated(dir string) error {
	cmd := execx.Command{
		Name:    "mkdir",
		Args:    []string{"-p", dir},
		Elevate: true,
	}
	s.Log.Debug(messages.ExecTrace, "cmd", cmd.Display())
	return s.Runner.Run(cmd)
}

// mirror makes dst an exact copy of src. Trailing slashes make rsync copy
// src's contents rather than src itself.
func (s *Synchronizer) mirror(src, dst string) error {
	cmd := execx.Command{
		Name:    "rsync",
		Args:    []string{"-a", "--iconv=UTF-8,UTF-8", "--delete", src + "/", dst + "/"},
		Env:     mirrorLocale,
		Elevate: true,
	}
	s.Log.Debug(messages.ExecTrace, "cmd", cmd.Display())
	stdout, stderr, err := s.Runner.Output(cmd)
	if err != nil {
		s.Log.Error(messages.SysdirMirrorCmd,
			"error", err,
			"stdout", strings.TrimSpace(stdout),
			"stderr", strings.TrimSpace(stderr))
		return &MirrorError{Source: src, Target: dst, Stdout: stdout, Stderr: stderr, Err: err}
	}
	return nil
}

// fixPermissions normalizes modes under dir: directories 755, regular files
// 644, then *.bin back to 755 so dictionary binaries stay executable. The
// .bin pass is advisory because many schema packages ship none.
func (s *Synchronizer) fixPermissions(dir string) error {
	s.Log.Info(messages.SysdirFixingPerms, "path", dir)
	if err := s.findChmod(dir, []string{"-type", "d"}, "755"); err != nil {
		return &PermError{Class: PermClassDirectories, Err: err}
	}
	if err := s.findChmod(dir, []string{"-type", "f"}, "644"); err != nil {
		return &PermError{Class: PermClassFiles, Err: err}
	}
	if err := s.findChmod(dir, []string{"-name", "*.bin"}, "755"); err != nil {
		s.Log.Warn(messages.SysdirBinPermWarn, "error", err)
	}
	return nil
}

func (s *Synchronizer) findChmod(dir string, match []string, mode string) error {
	args := append([]string{dir}, match...)
	args = append(args, "-exec", "chmod", mode, "{}", ";")
	cmd := execx.Command{
		Name:    "find",
		Args:    args,
		Elevate: true,
	}
	s.Log.Debug(messages.ExecTrace, "cmd", cmd.Display())
	return s.Runner.Run(cmd)
}
