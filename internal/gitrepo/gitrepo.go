// Package gitrepo is the tag repository adapter behind release transitions.
// It uses the go-git library for repository access, tag bookkeeping, fetch
// and push, and falls back to the git CLI only for porcelain queries the
// library has no cheap equivalent for (log subjects, status, commits).
package gitrepo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/relcut/relcut/internal/version"
)

// Repository wraps a git repository and the remote used for tag exchange.
type Repository struct {
	repo   *git.Repository
	root   string
	remote string

	// WarningWriter receives non-fatal warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Open opens the git repository containing dir, traversing up to find the
// repository root. An empty dir means the current working directory, an
// empty remote means "origin".
func Open(dir, remote string) (*Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}
	if remote == "" {
		remote = "origin"
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repository{
		repo:   repo,
		root:   worktree.Filesystem.Root(),
		remote: remote,
	}, nil
}

// Root returns the absolute path to the repository root.
func (r *Repository) Root() string {
	return r.root
}

// Remote returns the name of the remote used for tag exchange.
func (r *Repository) Remote() string {
	return r.remote
}

// RemoteURL returns the first URL of the configured remote, or an error
// when the remote is not configured.
func (r *Repository) RemoteURL() (string, error) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return "", fmt.Errorf("remote %q not configured: %w", r.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", r.remote)
	}
	return urls[0], nil
}

// IsSSHRemote reports whether the remote URL uses an SSH transport.
func IsSSHRemote(url string) bool {
	return isSSHURL(url)
}

func (r *Repository) warnf(format string, args ...any) {
	w := r.WarningWriter
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format, args...)
}

// ListVersionTags returns all tags whose names parse as four-component
// versions, ordered from highest to lowest.
func (r *Repository) ListVersionTags() ([]version.Version, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var versions []version.Version
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		v, err := version.Parse(ref.Name().Short())
		if err != nil {
			// Marker tags and foreign tags are not versions.
			return nil
		}
		versions = append(versions, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	version.SortDescending(versions)
	return versions, nil
}

// TagExists reports whether a tag with the given name exists locally.
func (r *Repository) TagExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	return false, fmt.Errorf("checking tag %q: %w", name, err)
}

// resolveTag resolves a tag name to the commit hash it points at.
func (r *Repository) resolveTag(name string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, &MissingTagError{Name: name}
	}
	return *hash, nil
}

// TagTarget returns the commit hash a tag points at, as a hex string.
func (r *Repository) TagTarget(name string) (string, error) {
	hash, err := r.resolveTag(name)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// CreateTag creates a lightweight tag at ref. An empty ref tags HEAD;
// otherwise ref may be a tag name, branch or commit hash.
func (r *Repository) CreateTag(name, ref string) error {
	var hash plumbing.Hash
	if ref == "" {
		head, err := r.repo.Head()
		if err != nil {
			return fmt.Errorf("getting HEAD: %w", err)
		}
		hash = head.Hash()
	} else {
		resolved, err := r.repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return fmt.Errorf("resolving %q: %w", ref, err)
		}
		hash = *resolved
	}

	if _, err := r.repo.CreateTag(name, hash, nil); err != nil {
		return fmt.Errorf("creating tag %q: %w", name, err)
	}
	return nil
}

// EnsureTagAbsent removes a tag locally and on the remote so it can be
// recreated elsewhere. Both deletions are best-effort: a tag that is
// already absent, an unreachable remote or a rejected delete all count as
// success, because the caller is about to move the tag anyway. The
// returned error is always nil; the signature keeps call sites uniform.
func (r *Repository) EnsureTagAbsent(ctx context.Context, name string) error {
	if err := r.repo.DeleteTag(name); err != nil && err != git.ErrTagNotFound {
		r.warnf("Warning: could not delete local tag %q: %v\n", name, err)
	}

	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(":refs/tags/" + name)},
		Auth:       r.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		r.warnf("Warning: could not delete tag %q on remote %q: %v\n", name, r.remote, err)
	}

	return nil
}

// FetchTags synchronizes local tags with the remote. Unreachable remotes
// surface as a *NetworkError; an already up-to-date tag list is success.
func (r *Repository) FetchTags(ctx context.Context) error {
	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{"+refs/tags/*:refs/tags/*"},
		Auth:       r.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return &NetworkError{Op: "fetching tags", Remote: r.remote, Err: err}
	}
	return nil
}

// PushTags pushes all local tags to the remote. The refspec is forced so
// that moved marker tags overwrite their previous remote position. A
// failure surfaces as a *NetworkError and aborts the transition; earlier
// local mutations stand.
func (r *Repository) PushTags(ctx context.Context) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{"+refs/tags/*:refs/tags/*"},
		Auth:       r.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return &NetworkError{Op: "pushing tags", Remote: r.remote, Err: err}
	}
	return nil
}

// auth returns the authentication method for the configured remote.
// SSH remotes use the SSH agent, HTTPS remotes use environment
// credentials; a nil method lets go-git try unauthenticated access.
func (r *Repository) auth() transport.AuthMethod {
	remote, err := r.repo.Remote(r.remote)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	return authForURL(remote.Config().URLs[0])
}

func authForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		username = os.Getenv("GITHUB_TOKEN")
		if username != "" {
			password = "" // a GitHub token works as username with empty password
		}
	}

	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}

	return nil
}

// isSSHURL detects git@ (SCP-style), ssh:// and git+ssh:// remotes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
