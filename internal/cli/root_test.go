package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relcut/relcut/internal/errors"
	"github.com/relcut/relcut/internal/gitrepo"
	"github.com/relcut/relcut/internal/release"
	"github.com/relcut/relcut/internal/store"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error": {
			err:  nil,
			want: ExitSuccess,
		},
		"argument error": {
			err:  errors.InvalidMenuSelection("9"),
			want: ExitInvalidArguments,
		},
		"corrupt version file": {
			err:  &store.CorruptVersionFileError{Path: "version.txt", Content: "1.2.3", Reason: "expected 4 components"},
			want: ExitConfiguration,
		},
		"wrapped corrupt version file": {
			err:  fmt.Errorf("reading version: %w", &store.CorruptVersionFileError{Path: "v", Reason: "bad"}),
			want: ExitConfiguration,
		},
		"dirty working tree": {
			err:  &release.DirtyWorkingTreeError{},
			want: ExitPrerequisite,
		},
		"network failure": {
			err:  &gitrepo.NetworkError{Op: "pushing tags", Remote: "origin", Err: stderrors.New("unreachable")},
			want: ExitRuntime,
		},
		"plain error": {
			err:  stderrors.New("boom"),
			want: ExitRuntime,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestToCLIErrorCategories(t *testing.T) {
	tests := map[string]struct {
		err  error
		want errors.ErrorCategory
	}{
		"existing CLIError passes through": {
			err:  errors.NewPrerequisiteError("already categorized"),
			want: errors.Prerequisite,
		},
		"corrupt version file is configuration": {
			err:  &store.CorruptVersionFileError{Path: "v", Reason: "bad"},
			want: errors.Configuration,
		},
		"dirty tree is prerequisite": {
			err:  &release.DirtyWorkingTreeError{},
			want: errors.Prerequisite,
		},
		"network error is runtime": {
			err:  &gitrepo.NetworkError{Op: "fetching tags", Remote: "origin", Err: stderrors.New("down")},
			want: errors.Runtime,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, toCLIError(tc.err).Category)
		})
	}
}

func TestRootHasAllCommands(t *testing.T) {
	want := []string{"release", "uat", "uat-next", "prod", "generation", "status", "history", "doctor", "version", "init"}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}
