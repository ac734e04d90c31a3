package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxreport CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fxreport version %s\n", version)
		fmt.Fprintln(out, "Daily settlement report for client FX trade instructions")
		fmt.Fprintln(out, "https://github.com/rustyeddy/fxreport")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
