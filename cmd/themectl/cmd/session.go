package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iiroan/themectl/internal/colorscheme"
	"github.com/iiroan/themectl/internal/config"
	"github.com/iiroan/themectl/internal/storage"
	"github.com/iiroan/themectl/internal/theme"
	"github.com/iiroan/themectl/internal/ui"
)

// session owns one theme store and everything it is wired to for the
// duration of a command.
type session struct {
	kv      storage.Store
	store   *theme.Store
	root    *ui.Root
	closers []func() error
}

func openSession() (*session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &session{root: ui.NewRoot()}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening preference storage: %w", err)
	}
	s.kv = kv
	s.closers = append(s.closers, kv.Close)

	source, err := buildSource()
	if err != nil {
		s.Close()
		return nil, err
	}
	if chain, ok := source.(*colorscheme.Chain); ok {
		s.closers = append(s.closers, chain.Close)
	}

	interval, err := cfg.PollInterval()
	if err != nil {
		s.Close()
		return nil, err
	}

	monitor := colorscheme.NewMonitor(source,
		colorscheme.WithPollInterval(interval),
		colorscheme.WithFallbackDark(cfg.FallbackDark()),
		colorscheme.WithLogger(logger),
	)

	var store *theme.Store
	err = ui.RunWithSpinner("Detecting color scheme", func() error {
		var err error
		store, err = theme.NewStore(theme.Options{
			Namespace:   cfg.Namespace,
			Storage:     kv,
			Environment: monitor,
			Target:      s.root,
			Logger:      logger,
		})
		return err
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		s.Close()
		return nil, fmt.Errorf("creating theme store: %w", err)
	}
	s.store = store

	// the store is released before the resources it uses
	s.closers = append([]func() error{store.Close}, s.closers...)
	return s, nil
}

func buildSource() (colorscheme.Source, error) {
	if systemOverride != "" {
		switch strings.ToLower(strings.TrimSpace(systemOverride)) {
		case "dark":
			return colorscheme.NewManual(true), nil
		case "light":
			return colorscheme.NewManual(false), nil
		}
		return nil, fmt.Errorf("--system must be light or dark, got %q", systemOverride)
	}
	return colorscheme.Build(cfg.Detection.Sources, logger)
}

func (s *session) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func closeSession(s *session) {
	if err := s.Close(); err != nil {
		logger.Warn("cleanup failed", "error", err)
	}
}
