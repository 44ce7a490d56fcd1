package theme

import "errors"

var (
	// ErrInvalidMode is returned when a value outside system/light/dark is
	// passed where a Mode is required.
	ErrInvalidMode = errors.New("invalid theme mode")

	// ErrMissingStore is returned when a consumer is wired without a store.
	ErrMissingStore = errors.New("theme store is required")

	// ErrMissingDependency is returned by NewStore when Options is incomplete.
	ErrMissingDependency = errors.New("theme store dependency missing")
)

// Require returns ErrMissingStore when s is nil. Consumers call it from their
// constructors so a wiring defect surfaces before any state is read.
func Require(s *Store) error {
	if s == nil {
		return ErrMissingStore
	}
	return nil
}
