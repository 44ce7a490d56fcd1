package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/theme"
	"github.com/iiroan/themectl/internal/ui"
)

var setCmd = &cobra.Command{
	Use:       "set [system|light|dark]",
	Short:     "Choose the appearance mode",
	Long:      `Store the appearance mode. Without an argument an interactive prompt is shown.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.ModeSystem), string(theme.ModeLight), string(theme.ModeDark)},
	RunE:      runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	var next theme.Mode
	if len(args) == 1 {
		m, err := theme.ParseMode(args[0])
		if err != nil {
			return err
		}
		next = m
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	if next == "" {
		if !ui.IsInteractiveTerminal() {
			return fmt.Errorf("%w: a mode argument is required when not running in a terminal", theme.ErrInvalidMode)
		}
		picked, err := promptMode(s.store.Mode())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		next = picked
	}

	if err := s.store.SetMode(next); err != nil {
		return err
	}

	state := s.store.State()
	logger.Debug("mode stored", "mode", state.Mode, "resolved", state.Resolved)
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Current().SuccessStyle.Render(
			fmt.Sprintf("✓ mode %s (resolved %s)", state.Mode, state.Resolved)))
	}
	return nil
}

func promptMode(current theme.Mode) (theme.Mode, error) {
	choice := current
	options := []huh.Option[theme.Mode]{
		huh.NewOption("System (follow the desktop)", theme.ModeSystem),
		huh.NewOption("Light", theme.ModeLight),
		huh.NewOption("Dark", theme.ModeDark),
	}

	err := huh.NewSelect[theme.Mode]().
		Title("Appearance").
		Description("How should themectl pick light or dark?").
		Options(options...).
		Value(&choice).
		WithTheme(ui.HuhTheme()).
		WithKeyMap(promptKeyMap()).
		Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}
