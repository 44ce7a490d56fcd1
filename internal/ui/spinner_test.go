package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerModelDone(t *testing.T) {
	t.Parallel()

	m := NewSpinner("Detecting color scheme")
	assert.Contains(t, m.View(), "Detecting color scheme")

	next, cmd := m.Update(spinnerDoneMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())

	next, _ = m.Update(spinnerDoneMsg{err: errors.New("no bus")})
	assert.Contains(t, next.View(), "no bus")
}

func TestRunWithSpinnerNonInteractive(t *testing.T) {
	t.Setenv("CI", "1")

	called := false
	err := RunWithSpinner("working", func() error {
		called = true
		return errors.New("failed")
	})
	assert.True(t, called)
	require.EqualError(t, err, "failed")
}
