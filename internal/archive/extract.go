// Package archive extracts the schema package and locates its configuration
// root.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

const extractorBinary = "7z"

// The archive carries UTF-8 Chinese filenames; 7z decodes them correctly
// only under a UTF-8 locale.
const utf8Locale = "LANG=C.UTF-8"

// NotFoundError reports an unusable archive path.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(messages.ArchiveNotFoundFmt, e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ExtractError reports an extraction run that exited non-zero.
type ExtractError struct {
	Stderr string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf(messages.ArchiveExtractFailedFmt, strings.TrimSpace(e.Stderr))
}

// ErrNoConfigDir means extraction completed but produced nothing usable.
var ErrNoConfigDir = errors.New(messages.ArchiveNoConfigDir)

// Extractor unpacks archives into a disposable scratch directory.
type Extractor struct {
	Runner execx.Runner
	Log    *log.Logger
}

// Extract unpacks archivePath into scratchDir and returns the configuration
// root inside it. scratchDir is created if missing and cleared of any prior
// contents first; callers must not keep anything else there.
func (e *Extractor) Extract(archivePath, scratchDir string) (string, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return "", &NotFoundError{Path: archivePath, Err: err}
	}
	if err := clearDir(scratchDir); err != nil {
		return "", fmt.Errorf(messages.ArchivePrepareScratchFmt, scratchDir, err)
	}
	e.Log.Info(messages.ArchiveExtracting, "archive", archivePath, "into", scratchDir)
	cmd := execx.Command{
		Name: extractorBinary,
		Args: []string{"x", "-y", "-o" + scratchDir, "-bso0", "-bse0", archivePath},
		Env:  []string{utf8Locale},
	}
	e.Log.Debug(messages.ExecTrace, "cmd", cmd.Display())
	if _, stderr, err := e.Runner.Output(cmd); err != nil {
		e.Log.Error(messages.ArchiveToolFailed, "stderr", strings.TrimSpace(stderr), "error", err)
		return "", &ExtractError{Stderr: stderr}
	}
	root, err := findConfigDirectory(scratchDir)
	if err != nil {
		return "", err
	}
	e.Log.Info(messages.ArchiveConfigRoot, "path", root)
	return root, nil
}

// clearDir creates dir if needed and removes every existing entry inside it.
func clearDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// findConfigDirectory picks the directory the synchronizer should mirror:
// the first extracted subdirectory, or dir itself when the archive was flat.
func findConfigDirectory(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf(messages.ArchiveInspectScratchFmt, dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	if len(entries) > 0 {
		return dir, nil
	}
	return "", ErrNoConfigDir
}
