// Package deps ensures the external tools the installer shells out to are
// present, installing them through the host package manager when missing.
package deps

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

// Manager describes one known system package manager. Name doubles as the
// binary probed for under the resolver's bin directory and the executable
// invoked for update and install.
type Manager struct {
	Name        string
	UpdateArgs  []string
	InstallArgs []string
}

// ManagersFrom converts configured manager descriptors.
func ManagersFrom(configured []config.Manager) []Manager {
	out := make([]Manager, 0, len(configured))
	for _, m := range configured {
		out = append(out, Manager{Name: m.Name, UpdateArgs: m.UpdateArgs, InstallArgs: m.InstallArgs})
	}
	return out
}

// NoManagerError reports missing dependencies with no package manager able
// to install them.
type NoManagerError struct {
	Missing []string
}

func (e *NoManagerError) Error() string {
	return fmt.Sprintf(messages.DepsNoManagerFmt, strings.Join(e.Missing, ", "))
}

// InstallError reports a package-manager invocation that exited non-zero.
type InstallError struct {
	Command string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf(messages.DepsInstallFailedFmt, e.Command, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Checker reports which required executables are missing from PATH.
type Checker struct {
	Runner execx.Runner
	Log    *log.Logger
}

// Missing returns the subset of required not found on PATH, preserving input
// order. A failed lookup is a normal absent result, never an error.
func (c *Checker) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		path, err := c.Runner.LookPath(name)
		if err != nil {
			c.Log.Warn(messages.DepsAbsent, "name", name)
			missing = append(missing, name)
			continue
		}
		c.Log.Info(messages.DepsPresent, "name", name, "path", path)
	}
	return missing
}
