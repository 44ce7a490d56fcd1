package colorscheme

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/themectl/internal/exec"
	"github.com/iiroan/themectl/internal/platform"
)

// scripted answers commands by their joined argv.
func scripted(answers map[string]*exec.Result) runFunc {
	return func(_ context.Context, name string, args ...string) *exec.Result {
		if res, ok := answers[exec.FormatCommand(name, args)]; ok {
			return res
		}
		return &exec.Result{Command: name, Args: args, ExitCode: -1, Err: errors.New("executable file not found")}
	}
}

func succeeded(stdout string) *exec.Result {
	return &exec.Result{Stdout: stdout}
}

func exitWith(code int) *exec.Result {
	return &exec.Result{ExitCode: code, Err: errors.New("exit status")}
}

const (
	gnomeColorScheme = "gsettings get org.gnome.desktop.interface color-scheme"
	gnomeGtkTheme    = "gsettings get org.gnome.desktop.interface gtk-theme"
	appleStyle       = "defaults read -g AppleInterfaceStyle"
	windowsPersonal  = `reg query HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize /v AppsUseLightTheme`
)

func TestOSSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		goos    string
		answers map[string]*exec.Result
		want    bool
		wantErr error
	}{
		{
			name:    "darwin dark",
			goos:    platform.Darwin,
			answers: map[string]*exec.Result{appleStyle: succeeded("Dark\n")},
			want:    true,
		},
		{
			name:    "darwin light has no key",
			goos:    platform.Darwin,
			answers: map[string]*exec.Result{appleStyle: exitWith(1)},
			want:    false,
		},
		{
			name:    "darwin without defaults",
			goos:    platform.Darwin,
			answers: nil,
			wantErr: ErrUnavailable,
		},
		{
			name:    "gnome prefer-dark",
			goos:    platform.Linux,
			answers: map[string]*exec.Result{gnomeColorScheme: succeeded("'prefer-dark'\n")},
			want:    true,
		},
		{
			name: "gnome default falls back to gtk theme",
			goos: platform.Linux,
			answers: map[string]*exec.Result{
				gnomeColorScheme: succeeded("'default'\n"),
				gnomeGtkTheme:    succeeded("'Adwaita-dark'\n"),
			},
			want: true,
		},
		{
			name: "gnome light gtk theme",
			goos: platform.Linux,
			answers: map[string]*exec.Result{
				gnomeColorScheme: exitWith(1),
				gnomeGtkTheme:    succeeded("'Adwaita'\n"),
			},
			want: false,
		},
		{
			name:    "linux without gsettings",
			goos:    platform.Linux,
			wantErr: ErrUnavailable,
		},
		{
			name: "windows dark",
			goos: platform.Windows,
			answers: map[string]*exec.Result{windowsPersonal: succeeded(strings.Join([]string{
				"",
				`HKEY_CURRENT_USER\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
				"    AppsUseLightTheme    REG_DWORD    0x0",
				"",
			}, "\r\n"))},
			want: true,
		},
		{
			name:    "windows unreadable",
			goos:    platform.Windows,
			answers: map[string]*exec.Result{windowsPersonal: succeeded("nothing useful")},
			wantErr: ErrUnavailable,
		},
		{
			name:    "unsupported os",
			goos:    "plan9",
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := &OSSettings{goos: tt.goos, run: scripted(tt.answers)}
			dark, err := o.PrefersDark(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dark)
		})
	}
}

func TestOSSettingsMissingTool(t *testing.T) {
	t.Parallel()

	ran := false
	o := &OSSettings{
		goos: platform.Linux,
		run: func(context.Context, string, ...string) *exec.Result {
			ran = true
			return succeeded("'prefer-dark'")
		},
		available: func(name string) bool {
			assert.Equal(t, "gsettings", name)
			return false
		},
	}

	_, err := o.PrefersDark(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "gsettings")
	assert.False(t, ran, "nothing runs when the tool is missing")
}

func TestParseGnomeColorScheme(t *testing.T) {
	t.Parallel()

	dark, ok := parseGnomeColorScheme("'prefer-dark'")
	assert.True(t, ok)
	assert.True(t, dark)

	dark, ok = parseGnomeColorScheme("\"prefer-light\"\n")
	assert.True(t, ok)
	assert.False(t, dark)

	_, ok = parseGnomeColorScheme("'default'")
	assert.False(t, ok)
}

func TestParseAppsUseLightTheme(t *testing.T) {
	t.Parallel()

	dark, ok := parseAppsUseLightTheme("    AppsUseLightTheme    REG_DWORD    0x1\n")
	assert.True(t, ok)
	assert.False(t, dark)

	_, ok = parseAppsUseLightTheme("    SystemUsesLightTheme    REG_DWORD    0x0\n")
	assert.False(t, ok)
}

func TestDecodeColorScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      dbus.Variant
		dark   bool
		wantOK bool
	}{
		{name: "dark", v: dbus.MakeVariant(uint32(1)), dark: true, wantOK: true},
		{name: "light", v: dbus.MakeVariant(uint32(2)), wantOK: true},
		{name: "default reads as light", v: dbus.MakeVariant(uint32(0)), wantOK: true},
		{name: "unknown value", v: dbus.MakeVariant(uint32(3))},
		{name: "nested", v: dbus.MakeVariant(dbus.MakeVariant(uint32(1))), dark: true, wantOK: true},
		{name: "wrong type", v: dbus.MakeVariant("dark")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dark, ok := decodeColorScheme(tt.v)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.dark, dark)
		})
	}
}

func TestDecodeSettingChanged(t *testing.T) {
	t.Parallel()

	signal := func(ns, key string, value any) *dbus.Signal {
		return &dbus.Signal{
			Name: signalSettingChanged,
			Body: []any{ns, key, dbus.MakeVariant(value)},
		}
	}

	dark, ok := decodeSettingChanged(signal(appearanceNamespace, colorSchemeKey, uint32(1)))
	assert.True(t, ok)
	assert.True(t, dark)

	dark, ok = decodeSettingChanged(signal(appearanceNamespace, colorSchemeKey, uint32(2)))
	assert.True(t, ok)
	assert.False(t, dark)

	// turning dark style off on GNOME sends the default value
	dark, ok = decodeSettingChanged(signal(appearanceNamespace, colorSchemeKey, uint32(0)))
	assert.True(t, ok, "default must reach the watcher")
	assert.False(t, dark)

	_, ok = decodeSettingChanged(signal(appearanceNamespace, "accent-color", uint32(1)))
	assert.False(t, ok)

	_, ok = decodeSettingChanged(signal("org.gnome.desktop.interface", colorSchemeKey, uint32(1)))
	assert.False(t, ok)

	_, ok = decodeSettingChanged(&dbus.Signal{Name: "org.example.Other", Body: []any{appearanceNamespace, colorSchemeKey, dbus.MakeVariant(uint32(1))}})
	assert.False(t, ok)

	_, ok = decodeSettingChanged(nil)
	assert.False(t, ok)
}
