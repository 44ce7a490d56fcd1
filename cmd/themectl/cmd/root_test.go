package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/themectl/internal/config"
	"github.com/iiroan/themectl/internal/theme"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"namespace: test",
		"storage:",
		"  backend: bolt",
		"  path: " + filepath.Join(dir, "preferences.db"),
		"detection:",
		"  sources: [env]",
		"ui:",
		"  no_color: true",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// run executes the root command with fresh flag state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	getJSON, getAttrs, versionJSON, watchJSON = false, false, false, false
	verbose, quiet, noColor = false, false, false
	cfgFile, systemOverride = "", ""
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGetSetRoundTrip(t *testing.T) {
	t.Setenv("THEMECTL_SYSTEM_THEME", "")
	cfgPath := writeTestConfig(t)

	out, err := run(t, "--config", cfgPath, "--system", "dark", "get", "--json")
	require.NoError(t, err)

	var got struct {
		theme.State
		Attributes map[string]string `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, theme.ModeSystem, got.Mode)
	assert.Equal(t, theme.ResolvedDark, got.Resolved)
	assert.Equal(t, map[string]string{theme.AttrResolved: "dark"}, got.Attributes)

	out, err = run(t, "--config", cfgPath, "--system", "dark", "set", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "mode light")

	out, err = run(t, "--config", cfgPath, "--system", "dark", "get", "--attrs")
	require.NoError(t, err)
	assert.Equal(t, `data-theme="light" data-theme-resolved="light"`, strings.TrimSpace(out))
}

func TestSetRejectsInvalidMode(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := run(t, "--config", cfgPath, "set", "purple")
	require.ErrorIs(t, err, theme.ErrInvalidMode)
}

func TestSystemOverrideValidation(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := run(t, "--config", cfgPath, "--system", "sepia", "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--system")
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "version")
}

func TestWriteWatchLine(t *testing.T) {
	t.Cleanup(func() { watchJSON = false })

	st := theme.State{Mode: theme.ModeSystem, System: theme.ResolvedDark, Resolved: theme.ResolvedDark}

	watchJSON = true
	var buf bytes.Buffer
	require.NoError(t, writeWatchLine(&buf, st))

	var got struct {
		Time string `json:"time"`
		theme.State
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotEmpty(t, got.Time)
	assert.Equal(t, st, got.State)

	watchJSON = false
	buf.Reset()
	require.NoError(t, writeWatchLine(&buf, st))
	assert.Contains(t, buf.String(), "(mode system, system dark)")
}

func TestSaveSettings(t *testing.T) {
	_, err := run(t, "version")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfgFile = path
	cfg = config.DefaultConfig()
	t.Cleanup(func() { cfgFile, cfg = "", nil })

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	next := *config.DefaultConfig()
	next.Storage.Backend = "bolt"
	next.Detection.Fallback = "dark"
	require.NoError(t, saveSettings(c, next))
	assert.Contains(t, out.String(), path)
	assert.Equal(t, "bolt", cfg.Storage.Backend)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt", loaded.Storage.Backend)
	assert.True(t, loaded.FallbackDark())

	next.Detection.Fallback = "sepia"
	require.Error(t, saveSettings(c, next))
}

func TestPromptKeyMapLeavesOnQ(t *testing.T) {
	km := promptKeyMap()
	assert.ElementsMatch(t, []string{"ctrl+c", "q", "esc"}, km.Quit.Keys())
	assert.Equal(t, "back", km.Quit.Help().Desc)
}
