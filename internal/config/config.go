// Package config handles configuration loading and validation for themectl
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iiroan/themectl/internal/colorscheme"
	"github.com/iiroan/themectl/internal/storage"
)

// Config represents the main configuration for themectl
type Config struct {
	// Namespace prefixes the persisted preference key
	Namespace string `yaml:"namespace"`

	Storage   StorageConfig   `yaml:"storage"`
	Detection DetectionConfig `yaml:"detection"`
	UI        UIConfig        `yaml:"ui"`
}

// StorageConfig selects where the mode is persisted
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, bolt or memory
	Path    string `yaml:"path"`
}

// DetectionConfig controls how the system color scheme is read
type DetectionConfig struct {
	Sources      []string `yaml:"sources"`
	PollInterval string   `yaml:"poll_interval"`
	Fallback     string   `yaml:"fallback"` // used when no source answers
}

// UIConfig holds terminal presentation settings
type UIConfig struct {
	NoColor bool `yaml:"no_color"`
	Dense   bool `yaml:"dense"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Namespace: "themectl",
		Storage: StorageConfig{
			Backend: storage.BackendFile,
		},
		Detection: DetectionConfig{
			Sources:      colorscheme.DefaultSources(),
			PollInterval: colorscheme.DefaultPollInterval.String(),
			Fallback:     "light",
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Namespace) == "" {
		return fmt.Errorf("namespace is required")
	}
	if strings.Contains(c.Namespace, ":") {
		return fmt.Errorf("namespace must not contain ':'")
	}

	switch c.Storage.Backend {
	case "", storage.BackendFile, storage.BackendBolt, storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q is not one of %s", c.Storage.Backend, strings.Join(storage.Backends(), ", "))
	}

	for _, name := range c.Detection.Sources {
		if !knownSource(name) {
			return fmt.Errorf("detection.sources: unknown source %q", name)
		}
	}

	if _, err := c.PollInterval(); err != nil {
		return err
	}

	switch c.Detection.Fallback {
	case "", "light", "dark":
	default:
		return fmt.Errorf("detection.fallback must be light or dark, got %q", c.Detection.Fallback)
	}

	return nil
}

// PollInterval parses detection.poll_interval, defaulting when empty
func (c *Config) PollInterval() (time.Duration, error) {
	if c.Detection.PollInterval == "" {
		return colorscheme.DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(c.Detection.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("detection.poll_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("detection.poll_interval must be positive")
	}
	return d, nil
}

// FallbackDark reports whether a missing environment should resolve to dark
func (c *Config) FallbackDark() bool {
	return c.Detection.Fallback == "dark"
}

func knownSource(name string) bool {
	for _, s := range colorscheme.DefaultSources() {
		if strings.EqualFold(strings.TrimSpace(name), s) {
			return true
		}
	}
	return false
}

// GetConfigPath returns the path to config.yaml in the user config directory
func GetConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "themectl", "config.yaml"), nil
}

// LoadDefault loads configuration from the user config directory
func LoadDefault() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
