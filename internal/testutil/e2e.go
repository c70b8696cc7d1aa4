package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// E2EEnv is an isolated environment for end-to-end tests: a compiled
// relcut binary, a git repository with a local bare remote, and a scratch
// HOME so user config and state never leak in or out.
type E2EEnv struct {
	t *testing.T

	// Bin is the path to the compiled relcut binary.
	Bin string
	// RepoDir is the worktree the binary runs in.
	RepoDir string
	// RemoteDir is the bare repository "origin" points at.
	RemoteDir string
	// Home is the isolated HOME directory.
	Home string
}

// Result captures one binary invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

var (
	buildOnce sync.Once
	builtBin  string
	buildErr  error
)

// NewE2EEnv builds the binary (once per test process) and prepares an
// isolated repository with a local remote.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	buildOnce.Do(func() {
		builtBin, buildErr = buildBinary()
	})
	if buildErr != nil {
		t.Fatalf("building relcut binary: %v", buildErr)
	}

	dir, remote := InitRepoWithRemote(t)
	return &E2EEnv{
		t:         t,
		Bin:       builtBin,
		RepoDir:   dir,
		RemoteDir: remote,
		Home:      t.TempDir(),
	}
}

// buildBinary compiles cmd/relcut into the OS temp directory.
func buildBinary() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}

	out, err := os.MkdirTemp("", "relcut-e2e-")
	if err != nil {
		return "", err
	}
	bin := filepath.Join(out, "relcut")

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/relcut")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", errors.New(string(output))
	}
	return bin, nil
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// Run invokes the binary in the repository with stdin and returns the
// captured result. The environment is minimal and isolated.
func (e *E2EEnv) Run(stdin string, args ...string) Result {
	e.t.Helper()

	cmd := exec.Command(e.Bin, args...)
	cmd.Dir = e.RepoDir
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.Home,
		"XDG_CONFIG_HOME=" + filepath.Join(e.Home, ".config"),
		"XDG_STATE_HOME=" + filepath.Join(e.Home, ".local", "state"),
		"GIT_CONFIG_NOSYSTEM=1",
		"NO_COLOR=1",
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("running %s: %v", e.Bin, err)
		}
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
