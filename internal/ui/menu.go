package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	MenuActionBack = "__back__"
	MenuActionQuit = "__quit__"
)

// ErrNotInteractive is returned when a menu is requested without a terminal.
var ErrNotInteractive = errors.New("non-interactive terminal")

type MenuOption func(*menuConfig)

type menuConfig struct {
	allowBack          bool
	backLabel          string
	initialSelectionID string
}

func defaultMenuConfig() menuConfig {
	return menuConfig{backLabel: "Back"}
}

func WithBackNavigation(label string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.allowBack = true
		if label != "" {
			cfg.backLabel = label
		}
	}
}

// WithInitialSelectionID pre-selects an item by ID when the menu opens.
func WithInitialSelectionID(id string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.initialSelectionID = strings.TrimSpace(id)
	}
}

type menuKeyMap struct {
	Select  key.Binding
	Jump    key.Binding
	Back    key.Binding
	Quit    key.Binding
	hasBack bool
}

func newMenuKeyMap(allowBack bool, backLabel string) menuKeyMap {
	k := menuKeyMap{
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
	}
	if allowBack {
		k.Back = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", strings.ToLower(backLabel)))
		k.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
		k.hasBack = true
		return k
	}
	k.Quit = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit"))
	return k
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	if k.hasBack {
		return []key.Binding{k.Select, k.Jump, k.Back}
	}
	return []key.Binding{k.Select, k.Jump, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	if k.hasBack {
		return [][]key.Binding{{k.Select, k.Jump}, {k.Back, k.Quit}}
	}
	return [][]key.Binding{{k.Select, k.Jump}, {k.Quit}}
}

// MenuItem represents a selectable item in a TUI list.
type MenuItem struct {
	ID        string
	TitleText string
	Details   string
}

// Title returns the menu label.
func (m MenuItem) Title() string { return m.TitleText }

// Description returns the menu details.
func (m MenuItem) Description() string { return m.Details }

// FilterValue returns the filterable text.
func (m MenuItem) FilterValue() string { return m.TitleText + " " + m.Details + " " + m.ID }

type menuDelegate struct{}

func (d menuDelegate) Height() int { return 1 }

func (d menuDelegate) Spacing() int { return 0 }

func (d menuDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok || m.Width() <= 0 {
		return
	}
	s := Current()

	slot := fmt.Sprintf("%d.", index+1)
	content := menuItem.TitleText
	if menuItem.Details != "" && m.Width() > 60 {
		content += " - " + menuItem.Details
	}
	content = ansi.Truncate(content, max(14, m.Width()-6), "...")

	if index == m.Index() {
		fmt.Fprint(w, "> "+s.Value.Render(slot)+" "+s.Value.Render(content)) //nolint:errcheck
		return
	}
	fmt.Fprint(w, "  "+s.MutedStyle.Render(slot)+" "+content) //nolint:errcheck
}

type menuModel struct {
	list      list.Model
	title     string
	subtitle  string
	choice    string
	quitting  bool
	allowBack bool
	help      help.Model
	keys      menuKeyMap
	width     int
	height    int
}

func newMenuModel(title string, subtitle string, items []MenuItem, cfg menuConfig) menuModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, menuDelegate{}, 40, len(items))
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	if cfg.initialSelectionID != "" {
		for idx, item := range items {
			if item.ID == cfg.initialSelectionID {
				l.Select(idx)
				break
			}
		}
	}

	s := Current()
	h := help.New()
	h.Styles.ShortKey = s.Value
	h.Styles.ShortDesc = s.MutedStyle
	h.Styles.FullKey = s.Value
	h.Styles.FullDesc = s.MutedStyle

	return menuModel{
		list:      l,
		title:     title,
		subtitle:  subtitle,
		allowBack: cfg.allowBack,
		help:      h,
		keys:      newMenuKeyMap(cfg.allowBack, cfg.backLabel),
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(20, msg.Width-4), max(3, min(len(m.list.Items()), msg.Height-8)))
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice = item.ID
				return m, tea.Quit
			}
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.selectByNumber(msg.String()) {
				return m, tea.Quit
			}
		case "q", "esc":
			m.quitting = true
			if m.allowBack {
				m.choice = MenuActionBack
			} else {
				m.choice = MenuActionQuit
			}
			return m, tea.Quit
		case "ctrl+c":
			m.quitting = true
			m.choice = MenuActionQuit
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *menuModel) selectByNumber(keyNum string) bool {
	if len(keyNum) != 1 {
		return false
	}
	target := int(keyNum[0] - '1')
	items := m.list.Items()
	if target < 0 || target >= len(items) {
		return false
	}
	m.list.Select(target)
	if item, ok := items[target].(MenuItem); ok {
		m.choice = item.ID
		return true
	}
	return false
}

func (m menuModel) View() string {
	if m.quitting {
		return ""
	}

	body := m.list.View()
	if item, ok := m.list.SelectedItem().(MenuItem); ok && strings.TrimSpace(item.Details) != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", Current().Hint.Render(item.Details))
	}
	return Frame(m.title, m.subtitle, body, m.help.View(m.keys))
}

// Choice returns the ID picked when the menu closed.
func (m menuModel) Choice() string {
	return m.choice
}

// RunMenu displays a TUI list and returns the selected item ID.
func RunMenu(title string, subtitle string, items []MenuItem, options ...MenuOption) (string, error) {
	if !IsInteractiveTerminal() {
		return "", ErrNotInteractive
	}
	cfg := defaultMenuConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	program := tea.NewProgram(newMenuModel(title, subtitle, items, cfg), tea.WithAltScreen())
	result, err := program.Run()
	if err != nil {
		return "", err
	}
	if final, ok := result.(menuModel); ok {
		return final.Choice(), nil
	}
	return "", nil
}
