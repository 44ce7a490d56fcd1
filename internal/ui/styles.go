// Package ui provides Charm-based UI components for themectl
package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of styles derived from the active palette.
type Styles struct {
	Palette Palette

	Bold         lipgloss.Style
	Title        lipgloss.Style
	Tagline      lipgloss.Style
	Header       lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Hint         lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	InfoBox      lipgloss.Style
	SuccessBox   lipgloss.Style
	ErrorBox     lipgloss.Style
	Swatch       lipgloss.Style
}

var (
	stylesMu sync.RWMutex
	current  = buildStyles(DefaultPalette())
)

// Current returns the styles for the active palette.
func Current() Styles {
	stylesMu.RLock()
	defer stylesMu.RUnlock()
	return current
}

// ApplyPalette switches the color palette for the TUI.
func ApplyPalette(p Palette) {
	s := buildStyles(p)
	stylesMu.Lock()
	current = s
	stylesMu.Unlock()
}

func color(p Palette, c lipgloss.Color) lipgloss.TerminalColor {
	if p.Disabled {
		return lipgloss.NoColor{}
	}
	return c
}

func buildStyles(p Palette) Styles {
	primary := color(p, p.Primary)
	secondary := color(p, p.Secondary)
	success := color(p, p.Success)
	warning := color(p, p.Warning)
	errColor := color(p, p.Error)
	muted := color(p, p.Muted)
	border := color(p, p.Border)

	header := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true)
	if !p.Disabled {
		header = header.Foreground(p.Background).Background(p.Primary)
	}

	return Styles{
		Palette: p,

		Bold: lipgloss.NewStyle().Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),

		Tagline: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		Header: header,

		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(10),

		Value: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Hint: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		SuccessStyle: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		WarningStyle: lipgloss.NewStyle().
			Foreground(warning),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),

		MutedStyle: lipgloss.NewStyle().
			Foreground(muted),

		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1),

		SuccessBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errColor).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1),

		Swatch: lipgloss.NewStyle().
			Padding(0, 1),
	}
}

// Header renders a title bar.
func Header(title string) string {
	return Current().Header.Render(title)
}
