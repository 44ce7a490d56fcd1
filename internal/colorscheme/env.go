package colorscheme

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvKey overrides detection when set to dark or light.
const DefaultEnvKey = "THEMECTL_SYSTEM_THEME"

// Env reads the preference from an environment variable.
type Env struct {
	key    string
	lookup func(string) (string, bool)
}

// NewEnv returns an Env source for key, or DefaultEnvKey when key is empty.
func NewEnv(key string) *Env {
	if key == "" {
		key = DefaultEnvKey
	}
	return &Env{key: key, lookup: os.LookupEnv}
}

func (e *Env) Name() string { return SourceEnv }

func (e *Env) PrefersDark(context.Context) (bool, error) {
	v, ok := e.lookup(e.key)
	v = strings.ToLower(strings.TrimSpace(v))
	if !ok || v == "" {
		return false, ErrUnavailable
	}
	switch v {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	}
	return false, fmt.Errorf("%s=%q: expected dark or light", e.key, v)
}
