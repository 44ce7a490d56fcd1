package colorscheme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/iiroan/themectl/internal/exec"
	"github.com/iiroan/themectl/internal/platform"
)

type runFunc func(ctx context.Context, name string, args ...string) *exec.Result

// OSSettings queries desktop settings through the platform's own tools:
// defaults on macOS, gsettings on Linux and reg on Windows.
type OSSettings struct {
	goos      string
	run       runFunc
	available func(name string) bool
}

// NewOSSettings returns a source for the running OS.
func NewOSSettings(logger *log.Logger) *OSSettings {
	return &OSSettings{
		goos: platform.Current(),
		run: func(ctx context.Context, name string, args ...string) *exec.Result {
			opts := exec.DefaultOptions()
			opts.Logger = logger
			// parsers expect untranslated output
			opts.Env = []string{"LC_ALL=C"}
			return exec.Run(ctx, name, args, opts)
		},
		available: exec.CheckCommand,
	}
}

func (o *OSSettings) Name() string { return SourceOS }

// tool returns the command queried on goos.
func tool(goos string) string {
	switch goos {
	case platform.Darwin:
		return "defaults"
	case platform.Linux:
		return "gsettings"
	case platform.Windows:
		return "reg"
	}
	return ""
}

func (o *OSSettings) PrefersDark(ctx context.Context) (bool, error) {
	name := tool(o.goos)
	if name == "" {
		return false, ErrUnavailable
	}
	if o.available != nil && !o.available(name) {
		return false, fmt.Errorf("%w: %s not found", ErrUnavailable, name)
	}

	switch o.goos {
	case platform.Darwin:
		return o.darwin(ctx)
	case platform.Linux:
		return o.linux(ctx)
	case platform.Windows:
		return o.windows(ctx)
	}
	return false, ErrUnavailable
}

func (o *OSSettings) darwin(ctx context.Context) (bool, error) {
	res := o.run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if !res.Started() {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, res.Err)
	}
	// the key is absent in light mode, which makes defaults exit non-zero
	if res.Err != nil {
		return false, nil
	}
	return parseAppleInterfaceStyle(res.Output()), nil
}

func (o *OSSettings) linux(ctx context.Context) (bool, error) {
	res := o.run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if res.Err == nil {
		if dark, ok := parseGnomeColorScheme(res.Output()); ok {
			return dark, nil
		}
	}

	res = o.run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if res.Err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, res.Err)
	}
	return parseGtkTheme(res.Output()), nil
}

func (o *OSSettings) windows(ctx context.Context) (bool, error) {
	res := o.run(ctx, "reg", "query",
		`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
		"/v", "AppsUseLightTheme")
	if res.Err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, res.Err)
	}
	dark, ok := parseAppsUseLightTheme(res.Stdout)
	if !ok {
		return false, ErrUnavailable
	}
	return dark, nil
}

func parseAppleInterfaceStyle(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}

// parseGnomeColorScheme reads 'prefer-dark', 'prefer-light' or 'default'.
// 'default' carries no preference and is reported as not ok.
func parseGnomeColorScheme(out string) (dark bool, ok bool) {
	v := strings.Trim(strings.TrimSpace(out), "'\"")
	switch strings.ToLower(v) {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	}
	return false, false
}

func parseGtkTheme(out string) bool {
	return strings.Contains(strings.ToLower(out), "dark")
}

// parseAppsUseLightTheme reads reg query output such as
// "AppsUseLightTheme    REG_DWORD    0x0".
func parseAppsUseLightTheme(out string) (dark bool, ok bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[0] != "AppsUseLightTheme" || fields[1] != "REG_DWORD" {
			continue
		}
		switch strings.ToLower(fields[2]) {
		case "0x0":
			return true, true
		case "0x1":
			return false, true
		}
	}
	return false, false
}
