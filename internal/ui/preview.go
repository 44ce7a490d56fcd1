package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iiroan/themectl/internal/theme"
)

// Controller is the part of the theme store the preview drives.
type Controller interface {
	State() theme.State
	SetMode(theme.Mode) error
	Subscribe(theme.Listener) func()
}

type previewKeyMap struct {
	System key.Binding
	Light  key.Binding
	Dark   key.Binding
	Cycle  key.Binding
	Quit   key.Binding
}

func newPreviewKeyMap() previewKeyMap {
	return previewKeyMap{
		System: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "system")),
		Light:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "light")),
		Dark:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark")),
		Cycle:  key.NewBinding(key.WithKeys("t", "tab"), key.WithHelp("t", "cycle")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.System, k.Light, k.Dark, k.Cycle, k.Quit}
}

func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.System, k.Light, k.Dark}, {k.Cycle, k.Quit}}
}

// StateMsg carries a store change into the program.
type StateMsg theme.State

type setModeErrMsg struct{ err error }

// PreviewModel shows the current theme state and lets the user switch modes.
type PreviewModel struct {
	ctrl     Controller
	state    theme.State
	keys     previewKeyMap
	help     help.Model
	err      error
	quitting bool
	width    int
}

// NewPreview returns a preview bound to ctrl.
func NewPreview(ctrl Controller) (PreviewModel, error) {
	if ctrl == nil {
		return PreviewModel{}, theme.ErrMissingStore
	}
	if s, ok := ctrl.(*theme.Store); ok {
		if err := theme.Require(s); err != nil {
			return PreviewModel{}, err
		}
	}
	return PreviewModel{
		ctrl:  ctrl,
		state: ctrl.State(),
		keys:  newPreviewKeyMap(),
		help:  help.New(),
	}, nil
}

// State returns the state the model last rendered.
func (m PreviewModel) State() theme.State { return m.state }

// NextMode returns the mode after m in system, light, dark order.
func NextMode(m theme.Mode) theme.Mode {
	modes := theme.Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return theme.ModeSystem
}

// setMode runs outside the event loop: the store notifies listeners
// synchronously and they send back into the program.
func (m PreviewModel) setMode(mode theme.Mode) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		if err := ctrl.SetMode(mode); err != nil {
			return setModeErrMsg{err: err}
		}
		return nil
	}
}

// cycleMode reads the mode when the command runs, so quick repeated presses
// each advance from the store's latest mode.
func (m PreviewModel) cycleMode() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		if err := ctrl.SetMode(NextMode(ctrl.State().Mode)); err != nil {
			return setModeErrMsg{err: err}
		}
		return nil
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case StateMsg:
		m.state = theme.State(msg)
		m.err = nil
	case setModeErrMsg:
		m.err = msg.err
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.System):
			return m, m.setMode(theme.ModeSystem)
		case key.Matches(msg, m.keys.Light):
			return m, m.setMode(theme.ModeLight)
		case key.Matches(msg, m.keys.Dark):
			return m, m.setMode(theme.ModeDark)
		case key.Matches(msg, m.keys.Cycle):
			return m, m.cycleMode()
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	if m.quitting {
		return ""
	}

	s := Current()
	rows := []string{
		s.Label.Render("mode") + s.Value.Render(m.state.Mode.String()),
		s.Label.Render("system") + s.Value.Render(m.state.System.String()),
		s.Label.Render("resolved") + s.Value.Render(m.state.Resolved.String()),
		"",
		swatches(s),
	}
	if m.err != nil {
		rows = append(rows, "", s.ErrorStyle.Render("✗ "+m.err.Error()))
	}

	body := s.InfoBox.Render(strings.Join(rows, "\n"))
	subtitle := fmt.Sprintf("Palette %q follows the resolved theme", s.Palette.Name)
	return Frame("THEME PREVIEW", subtitle, body, m.help.View(m.keys))
}

func swatches(s Styles) string {
	p := s.Palette
	if p.Disabled {
		return s.MutedStyle.Render("colors disabled")
	}
	colors := []struct {
		name string
		c    lipgloss.Color
	}{
		{"primary", p.Primary},
		{"accent", p.Accent},
		{"success", p.Success},
		{"warning", p.Warning},
		{"error", p.Error},
	}
	cells := make([]string, 0, len(colors))
	for _, c := range colors {
		cells = append(cells, s.Swatch.Foreground(p.Background).Background(c.c).Render(c.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RunPreview runs the interactive preview until the user quits.
func RunPreview(ctrl Controller) error {
	model, err := NewPreview(ctrl)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	unsubscribe := ctrl.Subscribe(func(st theme.State) {
		p.Send(StateMsg(st))
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview error: %w", err)
	}
	return nil
}
