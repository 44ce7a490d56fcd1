package exec

import (
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || !CheckCommand("sh") {
		t.Skip("sh not available")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	t.Parallel()
	requireShell(t)

	opts := DefaultOptions()
	opts.Logger = log.New(io.Discard)
	opts.Env = []string{"THEMECTL_EXEC_TEST=dark"}

	res := Run(context.Background(), "sh", []string{"-c", "echo $THEMECTL_EXEC_TEST; echo oops >&2"}, opts)
	require.NoError(t, res.Err)
	assert.True(t, res.Started())
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "dark", res.Output())
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestRunExitCode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	res := Run(context.Background(), "sh", []string{"-c", "exit 3"}, DefaultOptions())
	require.Error(t, res.Err)
	assert.True(t, res.Started())
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunMissingCommand(t *testing.T) {
	t.Parallel()

	res := Run(context.Background(), "themectl-definitely-not-installed", nil, DefaultOptions())
	require.Error(t, res.Err)
	assert.False(t, res.Started())
	assert.Equal(t, -1, res.ExitCode)
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()
	requireShell(t)

	opts := Options{Timeout: 50 * time.Millisecond}
	start := time.Now()
	res := Run(context.Background(), "sh", []string{"-c", "exec sleep 5"}, opts)
	require.Error(t, res.Err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckCommand("themectl-definitely-not-installed"))
}

func TestFormatCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gsettings get org.gnome.desktop.interface color-scheme",
		FormatCommand("gsettings", []string{"get", "org.gnome.desktop.interface", "color-scheme"}))
	assert.Equal(t, "defaults", FormatCommand("defaults", nil))
}
