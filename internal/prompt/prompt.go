// Package prompt asks for interactive confirmation before privileged work.
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cranekit/rimeup/internal/messages"
	"github.com/cranekit/rimeup/internal/terminal"
)

// Confirmer asks the user to approve an action. A false result without an
// error is an ordinary decline.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// HuhConfirmer implements Confirmer with a charmbracelet/huh form.
type HuhConfirmer struct {
	isTerminal func() bool
	// programOptions override the Bubble Tea program wiring; tests inject
	// piped input here. Nil means render on stderr with real stdin.
	programOptions []tea.ProgramOption
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhConfirmer creates a confirmer using the default terminal check.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

func (c *HuhConfirmer) ensureInteractive() error {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.PromptRequiresTerminal)
}

// confirmKeyMap lets Esc abort the form alongside the default Ctrl+C.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	return km
}

// Confirm renders a yes/no form with Install preselected. Aborting the form
// counts as a decline, not an error.
func (c *HuhConfirmer) Confirm(title, description string) (bool, error) {
	if err := c.ensureInteractive(); err != nil {
		return false, err
	}

	approve := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(messages.PromptAffirmative).
				Negative(messages.PromptNegative).
				Value(&approve),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	opts := c.programOptions
	if opts == nil {
		opts = []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	}
	form.WithProgramOptions(opts...)

	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approve, nil
}
