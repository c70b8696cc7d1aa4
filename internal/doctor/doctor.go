// Package doctor runs environment checks for the 'relcut doctor' command.
// Checks are independent and read-only, so they run concurrently; the
// release path itself never imports this package.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/relcut/relcut/internal/config"
	"github.com/relcut/relcut/internal/gitrepo"
	"github.com/relcut/relcut/internal/store"
)

// Status classifies a check outcome.
type Status int

const (
	// Pass means the check succeeded.
	Pass Status = iota
	// Warn means the check found something suspicious but not blocking.
	Warn
	// Fail means a release would not work in this environment.
	Fail
)

// CheckResult is the outcome of a single environment check.
type CheckResult struct {
	Name    string
	Status  Status
	Message string
}

// Report contains all check results in a stable order.
type Report struct {
	Checks []CheckResult
	Passed bool
}

// Run executes all environment checks concurrently and returns a report.
// dir is the directory to diagnose (usually the current working directory).
func Run(ctx context.Context, dir string, cfg *config.Configuration) *Report {
	checks := []func(context.Context) CheckResult{
		func(context.Context) CheckResult { return checkGitBinary() },
		func(context.Context) CheckResult { return checkRepository(dir, cfg) },
		func(context.Context) CheckResult { return checkVersionFile(dir, cfg) },
		func(context.Context) CheckResult { return checkChangelogWritable(dir, cfg) },
		func(context.Context) CheckResult { return checkAuth(dir, cfg) },
	}

	results := make([]CheckResult, len(checks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, check := range checks {
		g.Go(func() error {
			results[i] = check(ctx)
			return nil
		})
	}
	// Checks never return errors; failures are results.
	_ = g.Wait()

	report := &Report{Checks: results, Passed: true}
	for _, r := range results {
		if r.Status == Fail {
			report.Passed = false
		}
	}
	return report
}

// checkGitBinary verifies git is on PATH. The porcelain queries (log,
// status, commit) shell out to it.
func checkGitBinary() CheckResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return CheckResult{
			Name:    "git binary",
			Status:  Fail,
			Message: "git not found in PATH",
		}
	}
	return CheckResult{
		Name:    "git binary",
		Status:  Pass,
		Message: fmt.Sprintf("found at %s", path),
	}
}

// checkRepository verifies a repository is detectable and the configured
// remote exists.
func checkRepository(dir string, cfg *config.Configuration) CheckResult {
	repo, err := gitrepo.Open(dir, cfg.Remote)
	if err != nil {
		return CheckResult{
			Name:    "repository",
			Status:  Fail,
			Message: fmt.Sprintf("no git repository at or above %s", dir),
		}
	}

	url, err := repo.RemoteURL()
	if err != nil {
		return CheckResult{
			Name:    "repository",
			Status:  Fail,
			Message: fmt.Sprintf("remote %q is not configured", cfg.Remote),
		}
	}
	return CheckResult{
		Name:    "repository",
		Status:  Pass,
		Message: fmt.Sprintf("remote %s -> %s", cfg.Remote, url),
	}
}

// checkVersionFile verifies the version file exists and parses.
func checkVersionFile(dir string, cfg *config.Configuration) CheckResult {
	path := resolvePath(dir, cfg, cfg.VersionFile)

	v, err := store.New(path).Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckResult{
				Name:    "version file",
				Status:  Fail,
				Message: fmt.Sprintf("%s does not exist", path),
			}
		}
		return CheckResult{
			Name:    "version file",
			Status:  Fail,
			Message: err.Error(),
		}
	}
	return CheckResult{
		Name:    "version file",
		Status:  Pass,
		Message: fmt.Sprintf("current version %s", v),
	}
}

// checkChangelogWritable verifies the changelog can be written. A missing
// file is fine as long as its directory accepts writes.
func checkChangelogWritable(dir string, cfg *config.Configuration) CheckResult {
	path := resolvePath(dir, cfg, cfg.ChangelogFile)

	if f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0); err == nil {
		f.Close()
		return CheckResult{Name: "changelog", Status: Pass, Message: path + " is writable"}
	} else if !os.IsNotExist(err) {
		return CheckResult{Name: "changelog", Status: Fail, Message: path + " is not writable"}
	}

	probe := filepath.Join(filepath.Dir(path), ".relcut-doctor-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return CheckResult{Name: "changelog", Status: Fail, Message: filepath.Dir(path) + " is not writable"}
	}
	os.Remove(probe)
	return CheckResult{Name: "changelog", Status: Pass, Message: path + " can be created"}
}

// checkAuth reports whether credential material matching the remote's
// transport is available. Missing material is a warning: public remotes
// and credential helpers still work without it.
func checkAuth(dir string, cfg *config.Configuration) CheckResult {
	repo, err := gitrepo.Open(dir, cfg.Remote)
	if err != nil {
		return CheckResult{Name: "auth", Status: Warn, Message: "skipped: no repository"}
	}
	url, err := repo.RemoteURL()
	if err != nil {
		return CheckResult{Name: "auth", Status: Warn, Message: "skipped: no remote"}
	}

	if gitrepo.IsSSHRemote(url) {
		if os.Getenv("SSH_AUTH_SOCK") == "" {
			return CheckResult{
				Name:    "auth",
				Status:  Warn,
				Message: "ssh remote but no ssh-agent (SSH_AUTH_SOCK unset)",
			}
		}
		return CheckResult{Name: "auth", Status: Pass, Message: "ssh-agent available"}
	}

	if os.Getenv("GIT_USERNAME") == "" && os.Getenv("GITHUB_TOKEN") == "" {
		return CheckResult{
			Name:    "auth",
			Status:  Warn,
			Message: "https remote but neither GIT_USERNAME nor GITHUB_TOKEN is set",
		}
	}
	return CheckResult{Name: "auth", Status: Pass, Message: "https credentials present"}
}

// resolvePath anchors a config-relative path at the repository root when
// one is detectable, else at dir.
func resolvePath(dir string, cfg *config.Configuration, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	if repo, err := gitrepo.Open(dir, cfg.Remote); err == nil {
		return filepath.Join(repo.Root(), rel)
	}
	return filepath.Join(dir, rel)
}
