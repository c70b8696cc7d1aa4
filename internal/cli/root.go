// Package cli defines the relcut command tree. Each command builds its
// collaborators from the loaded configuration; no package carries global
// repository handles or file paths.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/errors"
	"github.com/relcut/relcut/internal/gitrepo"
	"github.com/relcut/relcut/internal/release"
	"github.com/relcut/relcut/internal/store"
)

var (
	flagConfigPath string
	flagNoColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "relcut",
	Short: "Four-component release versioning and git tag promotion",
	Long: `relcut manages a four-component version (X.Y.Z.R), drives git tagging
for UAT and PRODUCTION promotion, and maintains a changelog from commit
subjects tagged with emoji markers (✨ feature, 🐛 fix, 💥 breaking).

Run without arguments for the interactive release menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReleaseMenu(cmd)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to project config file (default .relcut/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command and maps failures to exit codes.
// The returned error is non-nil when the process should exit non-zero;
// ExitCode translates it.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to a process exit code,
// printing the formatted error on the way.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := toCLIError(err)
	errors.PrintError(cliErr)

	switch cliErr.Category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Configuration:
		return ExitConfiguration
	case errors.Prerequisite:
		return ExitPrerequisite
	default:
		return ExitRuntime
	}
}

// toCLIError folds the domain error taxonomy into a categorized CLIError.
func toCLIError(err error) *errors.CLIError {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var corrupt *store.CorruptVersionFileError
	if stderrors.As(err, &corrupt) {
		return errors.CorruptVersionFile(corrupt.Path, corrupt.Reason)
	}

	var dirty *release.DirtyWorkingTreeError
	if stderrors.As(err, &dirty) {
		return errors.DirtyWorkingTree()
	}

	var network *gitrepo.NetworkError
	if stderrors.As(err, &network) {
		return errors.RemoteUnreachable(network)
	}

	return errors.Wrap(err, errors.Runtime)
}

// workingDir returns the directory relcut operates on.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return dir, nil
}
