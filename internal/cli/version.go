package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/build"
	"github.com/relcut/relcut/internal/progress"
)

var versionCmd = &cobra.Command{
	Use:          "version",
	Short:        "Show relcut version and build information",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		caps := progress.DetectTerminalCapabilities()
		if !caps.IsTTY {
			fmt.Fprintf(out, "relcut %s\n", build.Version)
			return
		}

		fmt.Fprintf(out, "relcut %s\n", build.Version)
		fmt.Fprintf(out, "  commit:     %s\n", build.Commit)
		fmt.Fprintf(out, "  build date: %s\n", build.BuildDate)
		if build.IsDevBuild() {
			fmt.Fprintln(out, "  (development build)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
