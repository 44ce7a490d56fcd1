package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/ui"
	"github.com/iiroan/themectl/internal/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information about themectl.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if versionJSON {
			data, err := info.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		st := ui.Current()
		commit := info.ShortCommit()
		if commit == "" {
			commit = "unknown"
		}
		buildDate := info.BuildDate
		if buildDate == "" {
			buildDate = "unknown"
		}
		fmt.Fprintln(out, st.Title.Render("themectl"))
		fmt.Fprintln(out, st.Label.Render("version")+info.Version)
		fmt.Fprintln(out, st.Label.Render("commit")+commit)
		fmt.Fprintln(out, st.Label.Render("built")+buildDate)
		fmt.Fprintln(out, st.Label.Render("go")+info.GoVersion)
		fmt.Fprintln(out, st.Label.Render("platform")+info.Platform)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}
