package cli

import (
	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/doctor"
	"github.com/relcut/relcut/internal/errors"
	"github.com/relcut/relcut/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:          "doctor",
	Short:        "Check the environment for release readiness",
	Long:         `Checks the git binary, repository and remote, version file, changelog writability and available auth material. Exits non-zero when a required check fails.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := workingDir()
		if err != nil {
			return err
		}

		report := doctor.Run(cmd.Context(), dir, cfg)

		out := cmd.OutOrStdout()
		for _, check := range report.Checks {
			switch check.Status {
			case doctor.Pass:
				output.Success(out, "%-14s %s", check.Name, check.Message)
			case doctor.Warn:
				output.Warning(out, "%-14s %s", check.Name, check.Message)
			default:
				output.Failure(out, "%-14s %s", check.Name, check.Message)
			}
		}

		if !report.Passed {
			return errors.NewPrerequisiteError(
				"environment is not ready for a release",
				"Fix the failed checks above and run 'relcut doctor' again",
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
