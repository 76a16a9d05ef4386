// Package execx runs the external commands the installer depends on.
package execx

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
)

const sudoBinary = "sudo"

// Command describes a single external invocation as a structured argument
// list. No shell is involved at any point.
type Command struct {
	Name string
	Args []string
	// Env holds extra KEY=VALUE entries appended to the process environment.
	Env []string
	// Elevate runs the command through sudo unless the process is already root.
	Elevate bool
}

// Display renders the invocation the way a user would type it.
func (c Command) Display() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Elevate {
		parts = append(parts, sudoBinary)
	}
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Runner abstracts process execution and PATH lookups so components can be
// tested without touching the host system.
type Runner interface {
	LookPath(file string) (string, error)
	// Run executes cmd with stdin, stdout, and stderr inherited from the
	// current process, so the user can answer package-manager and sudo
	// prompts directly.
	Run(cmd Command) error
	// Output executes cmd with both output streams captured.
	Output(cmd Command) (stdout string, stderr string, err error)
}

// System implements Runner using os/exec.
type System struct{}

var geteuidFn = os.Geteuid

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable.
func (System) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// argv resolves the final executable and argument list, prefixing sudo when
// elevation is requested and the process is not already root.
func (System) argv(cmd Command) (string, []string) {
	if cmd.Elevate && geteuidFn() != 0 {
		return sudoBinary, append([]string{cmd.Name}, cmd.Args...)
	}
	return cmd.Name, cmd.Args
}

// Run executes cmd with inherited stdio.
func (s System) Run(cmd Command) error {
	name, args := s.argv(cmd)
	proc := exec.Command(name, args...)
	proc.Env = append(os.Environ(), cmd.Env...)
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return proc.Run()
}

// Output executes cmd and captures stdout and stderr separately.
func (s System) Output(cmd Command) (string, string, error) {
	name, args := s.argv(cmd)
	proc := exec.Command(name, args...)
	proc.Env = append(os.Environ(), cmd.Env...)
	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr
	err := proc.Run()
	return stdout.String(), stderr.String(), err
}
