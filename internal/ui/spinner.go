package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// SpinnerModel shows progress on stderr while a slow probe runs. It leaves
// nothing behind on success.
type SpinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
	err      error
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Current().Value.UnsetBold()
	return SpinnerModel{
		spinner: s,
		message: message,
	}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case spinnerDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.quitting {
		if m.err != nil {
			return Current().ErrorStyle.Render("✗ "+m.message+" failed: "+m.err.Error()) + "\n"
		}
		return ""
	}
	return m.spinner.View() + " " + Current().MutedStyle.Render(m.message) + "\n"
}

type spinnerDoneMsg struct{ err error }

// RunWithSpinner runs fn, animating a spinner on stderr when it is an
// interactive terminal.
func RunWithSpinner(message string, fn func() error) error {
	if !IsInteractiveTerminal() || !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	p := tea.NewProgram(NewSpinner(message), tea.WithOutput(os.Stderr), tea.WithInput(nil))

	errChan := make(chan error, 1)
	go func() {
		err := fn()
		errChan <- err
		p.Send(spinnerDoneMsg{err: err})
	}()

	_, runErr := p.Run()
	err := <-errChan
	if runErr != nil {
		return errors.Join(err, fmt.Errorf("spinner error: %w", runErr))
	}
	return err
}
