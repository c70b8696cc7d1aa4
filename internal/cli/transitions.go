package cli

import (
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/output"
	"github.com/relcut/relcut/internal/prompt"
	"github.com/relcut/relcut/internal/release"
	"github.com/relcut/relcut/internal/version"
)

// Direct, non-interactive equivalents of the menu choices. They share the
// orchestrator code path with the menu and skip only the prompt.

var uatCmd = &cobra.Command{
	Use:          "uat",
	Short:        "Cut a UAT release (X.Y.Z.R -> X.Y.Z.R+1)",
	Long:         `Cuts a UAT release: bumps the revision, records qualifying commits in the changelog, tags the release, moves the UAT marker and pushes all tags. With no qualifying commits since the previous release nothing is changed.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		return newOrchestrator(cmd, cfg, repo).UATRelease(cmd.Context())
	},
}

var uatNextCmd = &cobra.Command{
	Use:          "uat-next",
	Short:        "Start work on the next release (X.Y.Z.R -> X.Y.Z+1.0)",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		return newOrchestrator(cmd, cfg, repo).NextRelease()
	},
}

var prodCmd = &cobra.Command{
	Use:          "prod",
	Short:        "Promote an existing UAT tag to production",
	Long:         `Promotes a UAT tag: prompts for one of the existing version tags (newest first), moves the PRODUCTION-LATEST and <X>.<Y>.<Z>.PRODUCTION markers to it and pushes all tags. The version file is untouched.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		return runProdTransition(cmd, newOrchestrator(cmd, cfg, repo), cmd.InOrStdin())
	},
}

var generationCmd = &cobra.Command{
	Use:          "generation",
	Short:        "Start a new generation (X.Y.Z.R -> X.Y+1.0.0)",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		return newOrchestrator(cmd, cfg, repo).Generation()
	},
}

func init() {
	rootCmd.AddCommand(uatCmd)
	rootCmd.AddCommand(uatNextCmd)
	rootCmd.AddCommand(prodCmd)
	rootCmd.AddCommand(generationCmd)
}

// runProdTransition runs the PROD promotion with the interactive tag
// chooser reading from in. The menu path passes its shared reader here so
// the selection line piped after the menu choice is not lost. A
// repository without version tags is a handled no-op, not a failure.
func runProdTransition(cmd *cobra.Command, o *release.Orchestrator, in io.Reader) error {
	err := o.ProdRelease(cmd.Context(), func(tags []version.Version) (version.Version, error) {
		return prompt.SelectTag(in, cmd.OutOrStdout(), tags)
	})
	if stderrors.Is(err, release.ErrNoVersionTags) {
		output.Info(cmd.OutOrStdout(), "No version tags exist yet; run a UAT release first.")
		return nil
	}
	return err
}
