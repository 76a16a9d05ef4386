// Package logging creates the per-run installer log.
//
// Every rimeup run writes one append-only log file named after the run's
// start time. Log records are echoed to the console so interactive users
// see the same lines that land in the file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cranekit/rimeup/internal/messages"
)

const (
	filePrefix      = "rimeup_"
	timestampLayout = "20060102_150405"
)

// Run owns the log file for a single installer invocation.
type Run struct {
	*log.Logger
	file *os.File
	// Path is the log file location, surfaced to the user at startup.
	Path string
}

// Open creates dir if needed and opens the run log inside it, returning a
// logger that writes to both console and file. now stamps the file name.
func Open(dir string, console io.Writer, now time.Time) (*Run, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.LogCreateDirFmt, dir, err)
	}
	path := filepath.Join(dir, filePrefix+now.Format(timestampLayout)+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LogOpenFileFmt, path, err)
	}
	logger := log.NewWithOptions(io.MultiWriter(console, file), log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	return &Run{Logger: logger, file: file, Path: path}, nil
}

// Close releases the underlying log file.
func (r *Run) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Discard returns a logger that drops every record. Components require a
// non-nil logger; tests and quiet paths use this.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
