//go:build e2e

// Package e2e exercises the compiled relcut binary end to end against a
// real git repository with a local bare remote.
//
// To run these tests:
//
//	go test -tags=e2e ./tests/e2e/...
package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relcut/relcut/internal/testutil"
)

// seedRelease gives the repository a committed version file and one
// qualifying commit on top of it.
func seedRelease(t *testing.T, env *testutil.E2EEnv, current string) {
	t.Helper()

	testutil.CommitFile(t, env.RepoDir, "version.txt", current+"\n", "chore: seed version")
	testutil.RunGit(t, env.RepoDir, "tag", current)
	testutil.RunGit(t, env.RepoDir, "push", "origin", "main", "--tags")
	testutil.CommitFile(t, env.RepoDir, "feature.txt", "feature", "✨ add login")
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestUATReleaseFlow(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")

	result := env.Run("", "uat")
	require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

	assert.Equal(t, "1.0.0.1", strings.TrimSpace(readFile(t, env.RepoDir, "version.txt")))

	changelog := readFile(t, env.RepoDir, "CHANGELOG.md")
	assert.Contains(t, changelog, "## 1.0.0.1")
	assert.Contains(t, changelog, "- ✨ add login")

	tags := testutil.TagNames(t, env.RemoteDir)
	assert.Contains(t, tags, "1.0.0.1")
	assert.Contains(t, tags, "UAT-LATEST")

	// The changelog commit landed, so the tree stays clean.
	status := testutil.GitOutput(t, env.RepoDir, "status", "--porcelain")
	assert.Empty(t, status)
}

func TestUATReleaseNoQualifyingCommits(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	testutil.CommitFile(t, env.RepoDir, "version.txt", "1.0.0.0\n", "chore: seed version")
	testutil.RunGit(t, env.RepoDir, "tag", "1.0.0.0")
	testutil.RunGit(t, env.RepoDir, "push", "origin", "main", "--tags")
	testutil.CommitFile(t, env.RepoDir, "doc.txt", "doc", "docs: update readme")

	result := env.Run("", "uat")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Contains(t, result.Stdout, "No changes to release")

	assert.Equal(t, "1.0.0.0", strings.TrimSpace(readFile(t, env.RepoDir, "version.txt")))
	assert.NotContains(t, testutil.TagNames(t, env.RepoDir), "1.0.0.1")
	assert.NoFileExists(t, filepath.Join(env.RepoDir, "CHANGELOG.md"))
}

func TestUATReleaseDirtyTree(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")
	testutil.WriteFile(t, env.RepoDir, "scratch.txt", "uncommitted")

	result := env.Run("", "uat")
	assert.Equal(t, 4, result.ExitCode)
	assert.Contains(t, result.Stderr, "uncommitted changes")
	assert.Equal(t, "1.0.0.0", strings.TrimSpace(readFile(t, env.RepoDir, "version.txt")))
}

func TestInteractiveMenuRunsUATRelease(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "2.3.4.5")

	result := env.Run("1\n", "release")
	require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
	assert.Contains(t, result.Stdout, "UAT release")
	assert.Equal(t, "2.3.4.6", strings.TrimSpace(readFile(t, env.RepoDir, "version.txt")))
}

func TestInteractiveMenuInvalidChoice(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")

	result := env.Run("7\n", "release")
	assert.Equal(t, 2, result.ExitCode)
}

func TestProdPromotionFlow(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")

	require.Equal(t, 0, env.Run("", "uat").ExitCode)

	// Promote the newest tag (option 1 in the descending list).
	result := env.Run("1\n", "prod")
	require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

	tags := testutil.TagNames(t, env.RemoteDir)
	assert.Contains(t, tags, "PRODUCTION-LATEST")
	assert.Contains(t, tags, "1.0.0.PRODUCTION")

	local := testutil.GitOutput(t, env.RepoDir, "rev-parse", "PRODUCTION-LATEST")
	target := testutil.GitOutput(t, env.RepoDir, "rev-parse", "1.0.0.1")
	assert.Equal(t, target, local)
}

func TestInteractiveMenuRunsProdPromotion(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")

	require.Equal(t, 0, env.Run("", "uat").ExitCode)

	// Menu choice and tag selection arrive on one piped stream.
	result := env.Run("3\n1\n", "release")
	require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

	tags := testutil.TagNames(t, env.RemoteDir)
	assert.Contains(t, tags, "PRODUCTION-LATEST")
	assert.Contains(t, tags, "1.0.0.PRODUCTION")
}

func TestProdWithoutTagsIsHandledNoOp(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	testutil.CommitFile(t, env.RepoDir, "version.txt", "1.0.0.0\n", "chore: seed version")
	testutil.RunGit(t, env.RepoDir, "push", "origin", "main")

	result := env.Run("", "prod")
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "No version tags")
}

func TestVersionTransitions(t *testing.T) {
	tests := map[string]struct {
		command string
		want    string
	}{
		"uat-next bumps release": {command: "uat-next", want: "4.1.3.0"},
		"generation bumps major": {command: "generation", want: "4.2.0.0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			testutil.CommitFile(t, env.RepoDir, "version.txt", "4.1.2.9\n", "chore: seed version")

			result := env.Run("", tc.command)
			require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
			assert.Equal(t, tc.want, strings.TrimSpace(readFile(t, env.RepoDir, "version.txt")))
		})
	}
}

func TestCorruptVersionFileExitCode(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	testutil.CommitFile(t, env.RepoDir, "version.txt", "1.2.3\n", "chore: broken version")
	testutil.RunGit(t, env.RepoDir, "push", "origin", "main")

	result := env.Run("", "uat-next")
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "corrupt")
}

func TestHistoryRecordsReleases(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	seedRelease(t, env, "1.0.0.0")

	require.Equal(t, 0, env.Run("", "uat").ExitCode)

	result := env.Run("", "history")
	require.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "uat")
	assert.Contains(t, result.Stdout, "1.0.0.0 -> 1.0.0.1")
}

func TestDoctorHealthyAndBroken(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	testutil.CommitFile(t, env.RepoDir, "version.txt", "1.0.0.0\n", "chore: seed version")

	result := env.Run("", "doctor")
	assert.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

	// Corrupt the version file; doctor must now fail with the
	// prerequisite exit code.
	testutil.WriteFile(t, env.RepoDir, "version.txt", "nonsense")
	result = env.Run("", "doctor")
	assert.Equal(t, 4, result.ExitCode)
}

func TestVersionCommand(t *testing.T) {
	env := testutil.NewE2EEnv(t)

	result := env.Run("", "version")
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "relcut")
}
