package ui

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/iiroan/themectl/internal/theme"
)

// Root is the presentation root the theme store writes its markers to.
// Setting the resolved-theme attribute switches the active palette.
type Root struct {
	mu    sync.RWMutex
	attrs map[string]string
}

// NewRoot returns an empty root.
func NewRoot() *Root {
	return &Root{attrs: make(map[string]string)}
}

func (r *Root) SetAttribute(name, value string) {
	r.mu.Lock()
	prev, had := r.attrs[name]
	r.attrs[name] = value
	r.mu.Unlock()

	if name == theme.AttrResolved && (!had || prev != value) {
		ApplyPalette(PaletteFor(theme.Resolved(value), CurrentPreferences().NoColor))
	}
}

func (r *Root) RemoveAttribute(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attrs, name)
}

// Attribute returns the value of name and whether it is present.
func (r *Root) Attribute(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attrs[name]
	return v, ok
}

// Attributes returns a copy of every attribute.
func (r *Root) Attributes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

// HTMLAttributes renders the attributes for an HTML root element, sorted by
// name, e.g. `data-theme="dark" data-theme-resolved="dark"`.
func (r *Root) HTMLAttributes() string {
	attrs := r.Attributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%q", name, html.EscapeString(attrs[name])))
	}
	return strings.Join(parts, " ")
}
