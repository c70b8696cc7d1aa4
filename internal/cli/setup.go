package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/changelog"
	"github.com/relcut/relcut/internal/config"
	"github.com/relcut/relcut/internal/errors"
	"github.com/relcut/relcut/internal/gitrepo"
	"github.com/relcut/relcut/internal/history"
	"github.com/relcut/relcut/internal/notify"
	"github.com/relcut/relcut/internal/release"
	"github.com/relcut/relcut/internal/store"
)

// loadConfig loads the layered configuration, honoring --config.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}
	return cfg, nil
}

// openRepository opens the repository containing the current directory.
func openRepository(cfg *config.Configuration) (*gitrepo.Repository, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, err
	}

	repo, err := gitrepo.Open(dir, cfg.Remote)
	if err != nil {
		return nil, errors.NotARepository(dir)
	}
	return repo, nil
}

// newOrchestrator wires a release orchestrator from the loaded config.
// Config-relative paths are anchored at the repository root so relcut
// works from any subdirectory.
func newOrchestrator(cmd *cobra.Command, cfg *config.Configuration, repo *gitrepo.Repository) *release.Orchestrator {
	o := &release.Orchestrator{
		Store:     store.New(repoPath(repo, cfg.VersionFile)),
		Repo:      repo,
		Changelog: changelog.NewWriter(repoPath(repo, cfg.ChangelogFile)),
		Config:    cfg,
		Out:       cmd.OutOrStdout(),
	}

	if cfg.History.Enabled {
		o.Recorder = history.NewRecorder(config.DefaultStateDir(), cfg.History.MaxEntries)
	}
	if cfg.Notifications.Enabled {
		o.Notifier = notify.NewHandler(cfg.Notifications)
	}
	return o
}

// repoPath anchors a config path at the repository root unless absolute.
func repoPath(repo *gitrepo.Repository, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repo.Root(), path)
}
