package cmd

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// promptKeyMap is used by the mode prompt and the settings forms. Leaving a
// form with q or esc returns to the settings menu, or cancels set.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q", "back"),
	)
	return km
}
