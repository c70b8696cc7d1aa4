package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/changelog"
	"github.com/relcut/relcut/internal/output"
	"github.com/relcut/relcut/internal/store"
)

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the current version, marker targets and pending changes",
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
		out := cmd.OutOrStdout()

		current, err := store.New(repoPath(repo, cfg.VersionFile)).Read()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Version:  %s\n", output.Emphasize(current.String()))

		for _, marker := range []string{cfg.Markers.UATLatest, cfg.Markers.ProdLatest} {
			target, err := repo.TagTarget(marker)
			if err != nil {
				fmt.Fprintf(out, "%-9s (not set)\n", marker+":")
				continue
			}
			fmt.Fprintf(out, "%-9s %s\n", marker+":", shortSHA(target))
		}

		dirty, err := repo.HasUncommittedChanges()
		if err != nil {
			return err
		}
		if dirty {
			output.Warning(out, "Working tree has uncommitted changes")
		} else {
			output.Success(out, "Working tree clean")
		}

		subjects, err := repo.CommitsSince(current.String())
		if err != nil {
			return err
		}
		qualifying := changelog.Qualifying(subjects)
		if len(qualifying) == 0 {
			output.Info(out, "Nothing to release since %s.", current)
			return nil
		}

		fmt.Fprintf(out, "\n%d qualifying commits since %s:\n", len(qualifying), current)
		for _, subject := range qualifying {
			fmt.Fprintf(out, "  - %s\n", subject)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// shortSHA abbreviates a commit hash for display.
func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
