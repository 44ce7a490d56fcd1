package theme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/themectl/internal/theme"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    theme.Mode
		wantErr bool
	}{
		{in: "system", want: theme.ModeSystem},
		{in: "light", want: theme.ModeLight},
		{in: "dark", want: theme.ModeDark},
		{in: "  Dark\n", want: theme.ModeDark},
		{in: "LIGHT", want: theme.ModeLight},
		{in: "", wantErr: true},
		{in: "auto", wantErr: true},
		{in: "darkest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := theme.ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, theme.ErrInvalidMode)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeValid(t *testing.T) {
	t.Parallel()

	for _, m := range theme.Modes() {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, theme.Mode("").Valid())
	assert.False(t, theme.Mode("Dark").Valid())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	systems := []theme.Resolved{theme.ResolvedLight, theme.ResolvedDark}
	for _, system := range systems {
		assert.Equal(t, theme.ResolvedLight, theme.Resolve(theme.ModeLight, system))
		assert.Equal(t, theme.ResolvedDark, theme.Resolve(theme.ModeDark, system))
		assert.Equal(t, system, theme.Resolve(theme.ModeSystem, system))
	}
}

func TestResolvedFromDark(t *testing.T) {
	t.Parallel()

	assert.Equal(t, theme.ResolvedDark, theme.ResolvedFromDark(true))
	assert.Equal(t, theme.ResolvedLight, theme.ResolvedFromDark(false))
}

func TestStorageKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "themectl:theme", theme.StorageKey(""))
	assert.Equal(t, "docs:theme", theme.StorageKey("docs"))
}
