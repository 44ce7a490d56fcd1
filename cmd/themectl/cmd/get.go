package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/theme"
	"github.com/iiroan/themectl/internal/ui"
)

var (
	getJSON  bool
	getAttrs bool
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current mode and resolved theme",
	Long: `Show the stored mode, the desktop's color-scheme preference and the
theme that results from them.

With --attrs, print the presentation attributes instead, ready to be placed on
an HTML root element.`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Print the state as JSON")
	getCmd.Flags().BoolVar(&getAttrs, "attrs", false, "Print the presentation attributes")
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	out := cmd.OutOrStdout()
	state := s.store.State()

	switch {
	case getJSON:
		payload := struct {
			theme.State
			Attributes map[string]string `json:"attributes"`
		}{State: state, Attributes: s.root.Attributes()}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling state: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case getAttrs:
		fmt.Fprintln(out, s.root.HTMLAttributes())
	default:
		printState(cmd, state)
	}
	return nil
}

func printState(cmd *cobra.Command, state theme.State) {
	st := ui.Current()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, st.Label.Render("mode")+st.Value.Render(state.Mode.String()))
	fmt.Fprintln(out, st.Label.Render("system")+st.Value.Render(state.System.String()))
	fmt.Fprintln(out, st.Label.Render("resolved")+st.Value.Render(state.Resolved.String()))
}
