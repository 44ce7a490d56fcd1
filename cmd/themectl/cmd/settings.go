package cmd

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/colorscheme"
	"github.com/iiroan/themectl/internal/config"
	"github.com/iiroan/themectl/internal/storage"
	"github.com/iiroan/themectl/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configure storage, detection and display preferences",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func runSettings(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractiveTerminal() {
		return fmt.Errorf("settings requires an interactive terminal: %w", ui.ErrNotInteractive)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	backend := cfg.Storage.Backend
	if backend == "" {
		backend = storage.BackendFile
	}
	storagePath := cfg.Storage.Path

	sources := append([]string(nil), cfg.Detection.Sources...)
	if len(sources) == 0 {
		sources = colorscheme.DefaultSources()
	}
	pollInterval := cfg.Detection.PollInterval
	fallback := cfg.Detection.Fallback
	if fallback == "" {
		fallback = "light"
	}

	dense := cfg.UI.Dense
	noColorPref := cfg.UI.NoColor

	changed := false
	last := ""

	ui.StartScreen("SETTINGS", "Select a settings section to edit")

	for {
		choice, err := ui.RunMenu("SETTINGS", "Select a settings section", []ui.MenuItem{
			{ID: "storage", TitleText: "Storage", Details: "Where the chosen mode is persisted"},
			{ID: "detection", TitleText: "Detection", Details: "How the desktop color scheme is read"},
			{ID: "display", TitleText: "Display", Details: "Layout density and color output"},
			{ID: "save", TitleText: "Save & Exit", Details: "Write updates to config.yaml"},
			{ID: "exit", TitleText: "Exit", Details: "Leave without saving"},
		}, ui.WithBackNavigation("Back"), ui.WithInitialSelectionID(last))
		if err != nil {
			return err
		}
		last = choice

		var form *huh.Form
		switch choice {
		case "storage":
			options := make([]huh.Option[string], 0, len(storage.Backends()))
			for _, name := range storage.Backends() {
				options = append(options, huh.NewOption(name, name))
			}
			form = huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Backend").
						Description("file keeps YAML, bolt keeps a bbolt database, memory forgets on exit").
						Options(options...).
						Value(&backend),
					huh.NewInput().
						Title("Path").
						Description("Leave empty for the default location").
						Value(&storagePath),
				),
			)
		case "detection":
			options := make([]huh.Option[string], 0, len(colorscheme.DefaultSources()))
			for _, name := range colorscheme.DefaultSources() {
				options = append(options, huh.NewOption(name, name).Selected(slices.Contains(sources, name)))
			}
			form = huh.NewForm(
				huh.NewGroup(
					huh.NewMultiSelect[string]().
						Title("Sources").
						Description("Asked in order until one answers").
						Options(options...).
						Value(&sources),
					huh.NewInput().
						Title("Poll Interval").
						Description("Used when the source cannot push changes (e.g. 5s)").
						Placeholder(colorscheme.DefaultPollInterval.String()).
						Value(&pollInterval).
						Validate(func(value string) error {
							if value == "" {
								return nil
							}
							d, err := time.ParseDuration(value)
							if err != nil || d <= 0 {
								return fmt.Errorf("enter a positive duration")
							}
							return nil
						}),
					huh.NewSelect[string]().
						Title("Fallback").
						Description("Theme used when no source answers").
						Options(huh.NewOption("light", "light"), huh.NewOption("dark", "dark")).
						Value(&fallback),
				),
			)
		case "display":
			form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Dense Layout").
						Description("Reduce vertical spacing in the TUI").
						Value(&dense),
					huh.NewConfirm().
						Title("Disable Colors").
						Description("Use monochrome output").
						Value(&noColorPref),
				),
			)
		case "save":
			if !changed {
				return nil
			}
			return saveSettings(cmd, config.Config{
				Namespace: cfg.Namespace,
				Storage:   config.StorageConfig{Backend: backend, Path: storagePath},
				Detection: config.DetectionConfig{Sources: sources, PollInterval: pollInterval, Fallback: fallback},
				UI:        config.UIConfig{Dense: dense, NoColor: noColorPref},
			})
		default:
			return nil
		}

		if err := form.WithTheme(ui.HuhTheme()).WithKeyMap(promptKeyMap()).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}
		changed = true
	}
}

func saveSettings(cmd *cobra.Command, next config.Config) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := cfgFile
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	if err := next.Save(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*cfg = next
	applyUISettings()

	logger.Debug("settings saved", "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), ui.Current().SuccessBox.Render("Settings saved to "+path))
	return nil
}
