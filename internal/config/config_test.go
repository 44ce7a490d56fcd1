package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/themectl/internal/colorscheme"
	"github.com/iiroan/themectl/internal/storage"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "themectl", cfg.Namespace)
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, colorscheme.DefaultSources(), cfg.Detection.Sources)
	assert.False(t, cfg.FallbackDark())

	interval, err := cfg.PollInterval()
	require.NoError(t, err)
	assert.Equal(t, colorscheme.DefaultPollInterval, interval)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: bolt
detection:
  poll_interval: 30s
  fallback: dark
ui:
  dense: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "themectl", cfg.Namespace)
	assert.Equal(t, storage.BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, colorscheme.DefaultSources(), cfg.Detection.Sources)
	assert.True(t, cfg.FallbackDark())
	assert.True(t, cfg.UI.Dense)

	interval, err := cfg.PollInterval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, interval)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace: [oops"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Namespace = "docs"
	cfg.Detection.Sources = []string{colorscheme.SourcePortal}
	cfg.UI.NoColor = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty namespace", mutate: func(c *Config) { c.Namespace = " " }, wantErr: "namespace"},
		{name: "namespace with colon", mutate: func(c *Config) { c.Namespace = "a:b" }, wantErr: "namespace"},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "etcd" }, wantErr: "storage.backend"},
		{name: "unknown source", mutate: func(c *Config) { c.Detection.Sources = []string{"env", "sundial"} }, wantErr: "sundial"},
		{name: "bad interval", mutate: func(c *Config) { c.Detection.PollInterval = "soon" }, wantErr: "poll_interval"},
		{name: "negative interval", mutate: func(c *Config) { c.Detection.PollInterval = "-1s" }, wantErr: "poll_interval"},
		{name: "bad fallback", mutate: func(c *Config) { c.Detection.Fallback = "system" }, wantErr: "fallback"},
		{name: "empty backend", mutate: func(c *Config) { c.Storage.Backend = "" }},
		{name: "source case", mutate: func(c *Config) { c.Detection.Sources = []string{"Portal"} }},
		{name: "empty interval", mutate: func(c *Config) { c.Detection.PollInterval = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "themectl", filepath.Base(filepath.Dir(path)))
}
