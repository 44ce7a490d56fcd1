package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	// DefaultNamespace prefixes the storage key when Options.Namespace is empty.
	DefaultNamespace = "themectl"

	// AttrMode carries the explicit mode; absent while the mode is system.
	AttrMode = "data-theme"
	// AttrResolved always carries the resolved theme.
	AttrResolved = "data-theme-resolved"
)

// Storage is a durable string key-value store.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Environment is the host's color-scheme signal.
type Environment interface {
	PrefersDark() (bool, error)
	// Subscribe calls onChange whenever the preference flips. The returned
	// cancel func must be safe to call more than once.
	Subscribe(onChange func(prefersDark bool)) (cancel func(), err error)
}

// Target receives the presentation markers.
type Target interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// Listener observes state changes.
type Listener func(State)

// Options wires a Store to its collaborators.
type Options struct {
	Namespace   string
	Storage     Storage
	Environment Environment
	Target      Target
	Logger      *log.Logger
}

// StorageKey returns the persisted key for a namespace.
func StorageKey(namespace string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":theme"
}

type subscription struct {
	id uint64
	fn Listener
}

// Store holds the current mode and system preference and keeps the resolved
// theme, the persisted mode and the presentation target in step with them.
//
// applyMu serializes transitions including their side effects and
// notifications; mu guards the fields so listeners may read the store while
// being notified. Listeners must not call SetMode synchronously.
type Store struct {
	key     string
	storage Storage
	target  Target
	logger  *log.Logger

	applyMu sync.Mutex

	mu        sync.RWMutex
	mode      Mode
	system    Resolved
	resolved  Resolved
	listeners []subscription
	nextID    uint64
	closed    bool

	cancelOnce sync.Once
	cancelEnv  func()
}

// NewStore reads the persisted mode, samples the environment, applies the
// initial presentation markers and starts listening for environment changes.
func NewStore(opts Options) (*Store, error) {
	switch {
	case opts.Storage == nil:
		return nil, fmt.Errorf("%w: storage", ErrMissingDependency)
	case opts.Environment == nil:
		return nil, fmt.Errorf("%w: environment", ErrMissingDependency)
	case opts.Target == nil:
		return nil, fmt.Errorf("%w: target", ErrMissingDependency)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Store{
		key:     StorageKey(opts.Namespace),
		storage: opts.Storage,
		target:  opts.Target,
		logger:  logger.WithPrefix("theme"),
	}

	s.mode = s.loadMode()
	s.system = s.sampleSystem(opts.Environment)
	s.resolved = Resolve(s.mode, s.system)

	s.applyMu.Lock()
	s.apply(s.State())
	s.applyMu.Unlock()

	cancel, err := opts.Environment.Subscribe(s.handleSystemChange)
	if err != nil {
		s.logger.Warn("color scheme changes will not be tracked", "error", err)
		cancel = nil
	}
	s.cancelEnv = cancel

	// catch a flip between the first sample and the subscription
	if dark, err := opts.Environment.PrefersDark(); err == nil {
		s.handleSystemChange(dark)
	}

	s.logger.Debug("store ready", "key", s.key, "mode", s.mode, "system", s.system, "resolved", s.resolved)
	return s, nil
}

func (s *Store) loadMode() Mode {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		s.logger.Warn("could not read stored theme, using system", "key", s.key, "error", err)
		return ModeSystem
	}
	if !ok {
		return ModeSystem
	}
	m := modeFromStorage(raw)
	if string(m) != raw {
		s.logger.Debug("ignoring invalid stored theme", "key", s.key, "value", raw)
	}
	return m
}

func (s *Store) sampleSystem(env Environment) Resolved {
	dark, err := env.PrefersDark()
	if err != nil {
		s.logger.Warn("could not sample color scheme", "error", err)
	}
	return ResolvedFromDark(dark)
}

// Mode returns the current preference.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Resolved returns the theme currently applied.
func (s *Store) Resolved() Resolved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// System returns the last sampled host preference.
func (s *Store) System() Resolved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// State returns a consistent snapshot of mode, system and resolved values.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Mode: s.mode, System: s.system, Resolved: s.resolved}
}

// SetMode switches the preference. Values outside the enumeration return
// ErrInvalidMode and leave the store untouched. Persistence failures are
// logged, not returned.
func (s *Store) SetMode(next Mode) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(next))
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	if s.mode == next {
		s.mu.Unlock()
		return nil
	}
	s.mode = next
	s.resolved = Resolve(s.mode, s.system)
	state := State{Mode: s.mode, System: s.system, Resolved: s.resolved}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug("mode changed", "mode", state.Mode, "resolved", state.Resolved)
	s.apply(state)
	notify(listeners, state)
	return nil
}

// Reload re-reads the persisted mode to pick up a change made by another
// process. A missing or invalid value keeps the current mode.
func (s *Store) Reload() error {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		return fmt.Errorf("reading stored theme: %w", err)
	}
	if !ok {
		return nil
	}
	m := Mode(raw)
	if !m.Valid() {
		s.logger.Debug("ignoring invalid stored theme", "key", s.key, "value", raw)
		return nil
	}
	return s.SetMode(m)
}

func (s *Store) handleSystemChange(prefersDark bool) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	system := ResolvedFromDark(prefersDark)

	s.mu.Lock()
	if s.closed || s.system == system {
		s.mu.Unlock()
		return
	}
	s.system = system
	resolved := Resolve(s.mode, s.system)
	if resolved == s.resolved {
		// recorded for a later switch back to system
		s.mu.Unlock()
		s.logger.Debug("system preference changed", "system", system)
		return
	}
	s.resolved = resolved
	state := State{Mode: s.mode, System: s.system, Resolved: s.resolved}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug("system preference changed", "system", system, "resolved", resolved)
	s.apply(state)
	notify(listeners, state)
}

// apply persists the mode and writes the presentation markers. Callers hold
// applyMu.
func (s *Store) apply(state State) {
	if err := s.storage.Set(s.key, string(state.Mode)); err != nil {
		s.logger.Warn("could not persist theme", "key", s.key, "mode", state.Mode, "error", err)
	}

	if state.Mode == ModeSystem {
		s.target.RemoveAttribute(AttrMode)
	} else {
		s.target.SetAttribute(AttrMode, string(state.Mode))
	}
	s.target.SetAttribute(AttrResolved, string(state.Resolved))
}

// Subscribe registers fn for every change of mode or resolved theme. The
// returned func removes it; calling it again is a no-op.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		out[i] = sub.fn
	}
	return out
}

func notify(listeners []Listener, state State) {
	for _, fn := range listeners {
		fn(state)
	}
}

// Close releases the environment subscription. It is safe to call more than
// once; the store stays readable afterwards.
func (s *Store) Close() error {
	s.cancelOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		cancel := s.cancelEnv
		s.cancelEnv = nil
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		s.logger.Debug("store closed")
	})
	return nil
}
