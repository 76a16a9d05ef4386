package deps

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cranekit/rimeup/internal/execx"
	"github.com/cranekit/rimeup/internal/messages"
)

// Installer installs missing dependencies through the host package manager.
type Installer struct {
	Runner   execx.Runner
	Log      *log.Logger
	Resolver Resolver
	Managers []Manager
}

// Ensure checks required and installs whatever is missing.
func (i *Installer) Ensure(required []string) error {
	checker := &Checker{Runner: i.Runner, Log: i.Log}
	return i.Install(checker.Missing(required))
}

// Install resolves a package manager and installs missing through it,
// running the manager's update invocation first. Both invocations inherit
// stdio so the user can answer elevation and manager prompts; the first
// non-zero exit stops the sequence. An empty missing list is a no-op.
func (i *Installer) Install(missing []string) error {
	if len(missing) == 0 {
		i.Log.Info(messages.DepsAllPresent)
		return nil
	}
	mgr, ok := i.Resolver.Resolve(i.Managers)
	if !ok {
		i.Log.Error(messages.DepsNoManager, "missing", strings.Join(missing, ", "))
		return &NoManagerError{Missing: missing}
	}
	update := updateCommand(mgr)
	install := installCommand(mgr, missing)
	i.Log.Info(messages.DepsInstalling,
		"manager", mgr.Name,
		"packages", strings.Join(missing, " "),
		"command", update.Display()+" && "+install.Display(),
	)
	if err := i.Runner.Run(update); err != nil {
		i.Log.Error(messages.DepsCommandFailed, "command", update.Display(), "error", err)
		return &InstallError{Command: update.Display(), Err: err}
	}
	if err := i.Runner.Run(install); err != nil {
		i.Log.Error(messages.DepsCommandFailed, "command", install.Display(), "error", err)
		return &InstallError{Command: install.Display(), Err: err}
	}
	i.Log.Info(messages.DepsInstalled, "packages", strings.Join(missing, " "))
	return nil
}

func updateCommand(mgr Manager) execx.Command {
	return execx.Command{Name: mgr.Name, Args: mgr.UpdateArgs, Elevate: true}
}

func installCommand(mgr Manager, missing []string) execx.Command {
	args := make([]string, 0, len(mgr.InstallArgs)+len(missing))
	args = append(args, mgr.InstallArgs...)
	args = append(args, missing...)
	return execx.Command{Name: mgr.Name, Args: args, Elevate: true}
}
