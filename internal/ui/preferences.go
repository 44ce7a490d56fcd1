package ui

import "sync"

// Preferences controls runtime UI settings.
type Preferences struct {
	Dense   bool
	NoColor bool
}

var (
	prefsMu            sync.RWMutex
	currentPreferences Preferences
)

// CurrentPreferences returns the active UI preferences.
func CurrentPreferences() Preferences {
	prefsMu.RLock()
	defer prefsMu.RUnlock()
	return currentPreferences
}

// ApplyPreferences updates UI preferences and re-derives the active palette
// so a change of NoColor takes effect immediately.
func ApplyPreferences(p Preferences) {
	prefsMu.Lock()
	currentPreferences = p
	prefsMu.Unlock()

	palette := Current().Palette
	if p.NoColor {
		ApplyPalette(PaletteByName(paletteMono))
		return
	}
	if palette.Disabled {
		ApplyPalette(DefaultPalette())
	}
}
