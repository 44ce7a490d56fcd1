package colorscheme

import (
	"context"
	"slices"
	"sync"
)

// Manual is a source whose value is set by the program. It backs the
// --system override and tests.
//
// Watchers are called in subscription order. A callback must not call Set or
// stop its own subscription.
type Manual struct {
	// deliverMu keeps notifications in the order the values were set.
	deliverMu sync.Mutex

	mu      sync.Mutex
	dark    bool
	watches []*manualWatch
}

type manualWatch struct {
	mu     sync.Mutex
	active bool
	fn     func(bool)
}

// NewManual returns a manual source starting at dark.
func NewManual(dark bool) *Manual {
	return &Manual{dark: dark}
}

func (m *Manual) Name() string { return "manual" }

func (m *Manual) PrefersDark(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark, nil
}

// Set changes the value and notifies watchers when it differs.
func (m *Manual) Set(dark bool) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.dark == dark {
		m.mu.Unlock()
		return
	}
	m.dark = dark
	watches := slices.Clone(m.watches)
	m.mu.Unlock()

	for _, w := range watches {
		w.mu.Lock()
		if w.active {
			w.fn(dark)
		}
		w.mu.Unlock()
	}
}

// Watchers reports how many subscriptions are active.
func (m *Manual) Watchers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watches)
}

// Watch registers onChange. stop waits for a delivery in progress, so
// onChange is not called once stop has returned.
func (m *Manual) Watch(onChange func(prefersDark bool)) (func(), error) {
	w := &manualWatch{active: true, fn: onChange}

	m.mu.Lock()
	m.watches = append(m.watches, w)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.watches = slices.DeleteFunc(m.watches, func(other *manualWatch) bool { return other == w })
			m.mu.Unlock()

			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		})
	}, nil
}
