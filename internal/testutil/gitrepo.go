// Package testutil provides test utilities and helpers for relcut tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// InitRepo creates a temporary git repository with user identity configured
// for commits and returns its path. Cleanup is handled by t.TempDir.
func InitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	RunGit(t, dir, "init", "-b", "main")
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "user.name", "Test User")
	// Tag moves in tests must not depend on the host's signing setup.
	RunGit(t, dir, "config", "tag.gpgSign", "false")
	RunGit(t, dir, "config", "commit.gpgsign", "false")

	return dir
}

// InitRepoWithRemote creates a repository whose "origin" points at a local
// bare repository, so fetch and push exercise the real transport without
// touching the network. Returns the worktree path and the bare remote path.
func InitRepoWithRemote(t *testing.T) (string, string) {
	t.Helper()

	remote := filepath.Join(t.TempDir(), "remote.git")
	if err := exec.Command("git", "init", "--bare", "-b", "main", remote).Run(); err != nil {
		t.Fatalf("git init --bare: %v", err)
	}

	dir := InitRepo(t)
	RunGit(t, dir, "remote", "add", "origin", remote)

	return dir, remote
}

// RunGit executes a git command in the given directory, failing the test on
// error.
func RunGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, output)
	}
}

// GitOutput executes a git command and returns its trimmed stdout.
func GitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output))
}

// WriteFile creates a file with the given content inside the repository.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("creating file %s: %v", name, err)
	}
}

// CommitFile writes a file and commits it with the given subject.
func CommitFile(t *testing.T, dir, name, content, subject string) {
	t.Helper()

	WriteFile(t, dir, name, content)
	RunGit(t, dir, "add", name)
	RunGit(t, dir, "commit", "-m", subject)
}

// TagNames lists all tag names in the repository.
func TagNames(t *testing.T, dir string) []string {
	t.Helper()

	output := GitOutput(t, dir, "tag", "--list")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}
