package colorscheme

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Terminal asks the terminal for its background color. It only answers when
// stdout is an interactive terminal, since the query is written to it.
type Terminal struct {
	isTerminal func() bool
	hasDark    func() bool
}

// NewTerminal returns a Terminal source bound to stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		isTerminal: func() bool { return term.IsTerminal(os.Stdout.Fd()) },
		hasDark:    lipgloss.HasDarkBackground,
	}
}

func (t *Terminal) Name() string { return SourceTerminal }

func (t *Terminal) PrefersDark(context.Context) (bool, error) {
	if !t.isTerminal() {
		return false, ErrUnavailable
	}
	return t.hasDark(), nil
}
