package gitrepo

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommitsSince returns the subject line of every non-merge commit between
// tag and the current branch tip, newest first. A missing tag is not a
// failure: it emits a warning and yields an empty sequence, so a first
// release simply has nothing to report yet.
func (r *Repository) CommitsSince(tag string) ([]string, error) {
	exists, err := r.TagExists(tag)
	if err != nil {
		return nil, err
	}
	if !exists {
		r.warnf("Warning: %v; treating the commit range as empty\n", &MissingTagError{Name: tag})
		return nil, nil
	}

	cmd := exec.Command("git", "log", "--no-merges", "--pretty=format:%s", tag+"..HEAD")
	cmd.Dir = r.root

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("listing commits since %q: %w", tag, err)
	}

	return splitSubjects(output), nil
}

// splitSubjects turns git log output into one subject per line, dropping
// blank lines left by commits with empty subjects.
func splitSubjects(output []byte) []string {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil
	}

	var subjects []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			subjects = append(subjects, line)
		}
	}
	return subjects
}

// HasUncommittedChanges reports whether the working tree is dirty.
// Uses 'git status --porcelain' which returns output only when changes
// exist; modified, staged and untracked files all count.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = r.root

	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("checking uncommitted changes: %w", err)
	}

	return len(bytes.TrimSpace(output)) > 0, nil
}

// CurrentBranch returns the name of the current branch, or an error in
// detached HEAD state.
func (r *Repository) CurrentBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = r.root

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("getting current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("detached HEAD state")
	}
	return branch, nil
}

// HeadSHA returns the full hash of the current HEAD commit.
func (r *Repository) HeadSHA() (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = r.root

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("getting HEAD commit: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// Commit stages the given paths and records a commit with the given
// message. Used for the changelog-plus-version-file commit of a release.
func (r *Repository) Commit(paths []string, message string) error {
	if err := r.runGit(append([]string{"add", "--"}, paths...)...); err != nil {
		return fmt.Errorf("staging release files: %w", err)
	}
	if err := r.runGit("commit", "-m", message); err != nil {
		return fmt.Errorf("committing release files: %w", err)
	}
	return nil
}

// runGit executes a git command at the repository root, folding stderr
// into the returned error.
func (r *Repository) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.root

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, bytes.TrimSpace(output))
	}
	return nil
}
