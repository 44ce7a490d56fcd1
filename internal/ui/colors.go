package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iiroan/themectl/internal/theme"
)

// Palette defines the TUI color palette.
type Palette struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Disabled   bool
}

const (
	paletteLight = "light"
	paletteDark  = "dark"
	paletteMono  = "mono"
)

// PaletteFor returns the palette applied for a resolved theme.
func PaletteFor(resolved theme.Resolved, noColor bool) Palette {
	if noColor {
		return PaletteByName(paletteMono)
	}
	if resolved == theme.ResolvedLight {
		return PaletteByName(paletteLight)
	}
	return PaletteByName(paletteDark)
}

// PaletteByName returns a palette by name, defaulting to dark.
func PaletteByName(name string) Palette {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case paletteLight:
		return Palette{
			Name:       paletteLight,
			Primary:    lipgloss.Color("#0E7490"),
			Secondary:  lipgloss.Color("#6D28D9"),
			Accent:     lipgloss.Color("#0369A1"),
			Info:       lipgloss.Color("#1D4ED8"),
			Success:    lipgloss.Color("#047857"),
			Warning:    lipgloss.Color("#B45309"),
			Error:      lipgloss.Color("#B91C1C"),
			Muted:      lipgloss.Color("#64748B"),
			Background: lipgloss.Color("#F8FAFC"),
			Foreground: lipgloss.Color("#0F172A"),
			Border:     lipgloss.Color("#CBD5E1"),
			Highlight:  lipgloss.Color("#0284C7"),
		}
	case paletteMono:
		return Palette{
			Name:     paletteMono,
			Disabled: true,
		}
	default:
		return Palette{
			Name:       paletteDark,
			Primary:    lipgloss.Color("#22D3EE"),
			Secondary:  lipgloss.Color("#A78BFA"),
			Accent:     lipgloss.Color("#38BDF8"),
			Info:       lipgloss.Color("#60A5FA"),
			Success:    lipgloss.Color("#34D399"),
			Warning:    lipgloss.Color("#FBBF24"),
			Error:      lipgloss.Color("#F87171"),
			Muted:      lipgloss.Color("#94A3B8"),
			Background: lipgloss.Color("#0B1120"),
			Foreground: lipgloss.Color("#E2E8F0"),
			Border:     lipgloss.Color("#334155"),
			Highlight:  lipgloss.Color("#7DD3FC"),
		}
	}
}

// DefaultPalette returns the palette used before any theme is resolved.
func DefaultPalette() Palette {
	return PaletteByName(paletteDark)
}
