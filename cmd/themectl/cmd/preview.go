package cmd

import (
	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/ui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interactively preview and switch the theme",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	if !ui.IsInteractiveTerminal() {
		printState(cmd, s.store.State())
		return nil
	}

	return ui.RunPreview(s.store)
}
