package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/config"
	"github.com/iiroan/themectl/internal/ui"
)

var (
	verbose        bool
	quiet          bool
	noColor        bool
	cfgFile        string
	systemOverride string
	logger         *log.Logger
	cfg            *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "themectl",
	Short: "Manage the terminal appearance preference",
	Long: `themectl tracks an appearance mode (system, light or dark), resolves it
against the desktop's color-scheme preference and persists the choice.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		if cmd.Name() != "version" && cmd.Name() != "help" {
			var err error
			if cfgFile != "" {
				cfg, err = config.Load(cfgFile)
			} else {
				cfg, err = config.LoadDefault()
			}
			if err != nil {
				logger.Warn("could not load config, using defaults", "error", err)
				cfg = config.DefaultConfig()
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
		}

		applyUISettings()
		setupLogger()

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runPreview(cmd, args)
		}
		return cmd.Help()
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			setupLogger()
		}
		logger.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/themectl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&systemOverride, "system", "", "Pretend the desktop prefers light or dark")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

func colorDisabled() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return true
	}
	return cfg != nil && cfg.UI.NoColor
}

func applyUISettings() {
	prefs := ui.Preferences{NoColor: colorDisabled()}
	if cfg != nil {
		prefs.Dense = cfg.UI.Dense
	}
	ui.ApplyPreferences(prefs)
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	styles := log.DefaultStyles()
	if !colorDisabled() {
		p := ui.Current().Palette
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
			SetString("DEBUG").
			Foreground(p.Muted).
			Bold(true)
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
			SetString("INFO").
			Foreground(p.Primary).
			Bold(true)
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
			SetString("WARN").
			Foreground(p.Warning).
			Bold(true)
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Foreground(p.Error).
			Bold(true)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger.SetStyles(styles)
}
