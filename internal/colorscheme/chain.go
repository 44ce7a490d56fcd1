package colorscheme

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Chain asks its sources in order and returns the first answer.
type Chain struct {
	sources []Source
	logger  *log.Logger
}

// NewChain returns a chain over sources.
func NewChain(logger *log.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = log.Default()
	}
	return &Chain{sources: sources, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

// Sources returns the chained sources in priority order.
func (c *Chain) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

func (c *Chain) PrefersDark(ctx context.Context) (bool, error) {
	_, dark, err := c.first(ctx)
	return dark, err
}

func (c *Chain) first(ctx context.Context) (Source, bool, error) {
	for _, s := range c.sources {
		dark, err := s.PrefersDark(ctx)
		if err == nil {
			c.logger.Debug("color scheme detected", "source", s.Name(), "dark", dark)
			return s, dark, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			c.logger.Debug("color scheme source failed", "source", s.Name(), "error", err)
		}
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
	}
	return nil, false, fmt.Errorf("%w: no source answered", ErrUnavailable)
}

// Watch delegates to the first answering source when it pushes changes.
func (c *Chain) Watch(onChange func(prefersDark bool)) (func(), error) {
	s, _, err := c.first(context.Background())
	if err != nil {
		return nil, err
	}
	n, ok := s.(Notifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWatchUnsupported, s.Name())
	}
	return n.Watch(onChange)
}

// Close closes every source that holds resources.
func (c *Chain) Close() error {
	var errs []error
	for _, s := range c.sources {
		if err := closeSource(s); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
