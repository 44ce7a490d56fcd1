// Package theme tracks the user's appearance mode, resolves it against the
// host color-scheme preference and reflects the result onto a presentation
// target.
package theme

import (
	"fmt"
	"strings"
)

// Mode is the user-selected appearance preference.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// Resolved is the light/dark value actually applied to styling.
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

// Modes returns the valid modes in display order.
func Modes() []Mode {
	return []Mode{ModeSystem, ModeLight, ModeDark}
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeSystem, ModeLight, ModeDark:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

func (r Resolved) String() string { return string(r) }

// ParseMode converts user input into a Mode. Surrounding whitespace and case
// are ignored; anything else outside the enumeration is ErrInvalidMode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (expected system, light or dark)", ErrInvalidMode, s)
	}
	return m, nil
}

// modeFromStorage is the lenient reader for persisted values: only the exact
// literals are accepted, everything else falls back to system.
func modeFromStorage(s string) Mode {
	m := Mode(s)
	if m.Valid() {
		return m
	}
	return ModeSystem
}

// ResolvedFromDark maps the environment's boolean signal to a Resolved value.
func ResolvedFromDark(prefersDark bool) Resolved {
	if prefersDark {
		return ResolvedDark
	}
	return ResolvedLight
}

// Resolve computes the theme for a mode given the system preference.
func Resolve(mode Mode, system Resolved) Resolved {
	switch mode {
	case ModeLight:
		return ResolvedLight
	case ModeDark:
		return ResolvedDark
	}
	if system == ResolvedDark {
		return ResolvedDark
	}
	return ResolvedLight
}

// State is a snapshot of the store delivered to subscribers.
type State struct {
	Mode     Mode     `json:"mode"`
	System   Resolved `json:"system"`
	Resolved Resolved `json:"resolved"`
}
