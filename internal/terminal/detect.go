// Package terminal detects whether rimeup is talking to a person.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals.
// Confirmation prompts are only shown when this holds; piped or scripted
// runs must pass --yes instead.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
