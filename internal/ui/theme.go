package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HuhTheme returns the form theme for the active palette.
func HuhTheme() *huh.Theme {
	p := Current().Palette
	t := huh.ThemeBase()
	if p.Disabled {
		return t
	}

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Border)
	t.Focused.Title = t.Focused.Title.Foreground(p.Highlight).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Accent)
	t.Focused.Option = t.Focused.Option.Foreground(p.Foreground)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Accent)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p.Accent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(p.Foreground)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(p.Muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary).Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Foreground).Background(lipgloss.Color(""))

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Info)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Accent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
