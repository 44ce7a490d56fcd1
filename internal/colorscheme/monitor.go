package colorscheme

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultPollInterval  = 5 * time.Second
	defaultSampleTimeout = 3 * time.Second
)

// Monitor turns a Source into a subscribable signal. Sources that push
// changes are watched directly; the rest are polled.
type Monitor struct {
	source        Source
	interval      time.Duration
	sampleTimeout time.Duration
	fallbackDark  bool
	logger        *log.Logger
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithPollInterval sets how often non-pushing sources are sampled.
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithFallbackDark sets the answer used when no source is available.
func WithFallbackDark(dark bool) MonitorOption {
	return func(m *Monitor) {
		m.fallbackDark = dark
	}
}

// WithLogger sets the monitor's logger.
func WithLogger(logger *log.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor wraps source. Without options it polls every
// DefaultPollInterval and falls back to light.
func NewMonitor(source Source, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		source:        source,
		interval:      DefaultPollInterval,
		sampleTimeout: defaultSampleTimeout,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PrefersDark samples the source. An unavailable source yields the fallback
// without an error; other failures return the fallback and the error.
func (m *Monitor) PrefersDark() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.sampleTimeout)
	defer cancel()

	dark, err := m.source.PrefersDark(ctx)
	if err == nil {
		return dark, nil
	}
	if errors.Is(err, ErrUnavailable) {
		m.logger.Debug("no color scheme source available, using fallback", "dark", m.fallbackDark)
		return m.fallbackDark, nil
	}
	return m.fallbackDark, err
}

// Subscribe calls onChange each time the preference flips. cancel stops the
// watcher and waits for it; it may be called more than once.
func (m *Monitor) Subscribe(onChange func(prefersDark bool)) (func(), error) {
	if n, ok := m.source.(Notifier); ok {
		stop, err := n.Watch(onChange)
		if err == nil {
			m.logger.Debug("watching color scheme changes", "source", m.source.Name())
			return stop, nil
		}
		m.logger.Debug("falling back to polling", "source", m.source.Name(), "reason", err)
	}
	return m.poll(onChange), nil
}

func (m *Monitor) poll(onChange func(bool)) func() {
	last, _ := m.PrefersDark()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dark, err := m.PrefersDark()
				if err != nil {
					m.logger.Debug("color scheme poll failed", "error", err)
					continue
				}
				if dark == last || ctx.Err() != nil {
					continue
				}
				last = dark
				onChange(dark)
			}
		}
	}()

	m.logger.Debug("polling color scheme", "source", m.source.Name(), "interval", m.interval)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
