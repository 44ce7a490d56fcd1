// Package colorscheme reads the host's light/dark preference from the
// desktop, the operating system or the terminal, and turns it into a signal
// that can be subscribed to.
package colorscheme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnavailable means a source cannot answer on this host. Chains skip such
// sources silently.
var ErrUnavailable = errors.New("color scheme source unavailable")

// ErrWatchUnsupported is returned by Watch when no push notifications exist
// for the active source.
var ErrWatchUnsupported = errors.New("color scheme source does not support change notifications")

// Source answers whether the host currently prefers a dark appearance.
type Source interface {
	Name() string
	PrefersDark(ctx context.Context) (bool, error)
}

// Notifier is implemented by sources that push changes. Watch sets up the
// subscription before returning; stop is idempotent and no callback runs
// after it returns.
type Notifier interface {
	Watch(onChange func(prefersDark bool)) (stop func(), err error)
}

// Source names accepted by Build.
const (
	SourceEnv      = "env"
	SourcePortal   = "portal"
	SourceOS       = "os"
	SourceTerminal = "terminal"
)

// DefaultSources is the detection order used when the config names none.
func DefaultSources() []string {
	return []string{SourceEnv, SourcePortal, SourceOS, SourceTerminal}
}

// Build creates a chain from source names, in order.
func Build(names []string, logger *log.Logger) (*Chain, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(names) == 0 {
		names = DefaultSources()
	}

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case SourceEnv:
			sources = append(sources, NewEnv(""))
		case SourcePortal:
			sources = append(sources, NewPortal(logger))
		case SourceOS:
			sources = append(sources, NewOSSettings(logger))
		case SourceTerminal:
			sources = append(sources, NewTerminal())
		default:
			return nil, fmt.Errorf("unknown color scheme source %q", name)
		}
	}
	return NewChain(logger, sources...), nil
}

func closeSource(s Source) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
