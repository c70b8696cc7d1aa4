// Package release orchestrates the four release transitions: UAT release,
// start of the next release, PROD promotion and a new generation. Exactly
// one transition runs per invocation. A transition is a best-effort
// sequence: there is no rollback, so a late failure (typically the push)
// leaves earlier mutations in place and reports them.
package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/relcut/relcut/internal/changelog"
	"github.com/relcut/relcut/internal/config"
	"github.com/relcut/relcut/internal/gitrepo"
	"github.com/relcut/relcut/internal/history"
	"github.com/relcut/relcut/internal/notify"
	"github.com/relcut/relcut/internal/output"
	"github.com/relcut/relcut/internal/progress"
	"github.com/relcut/relcut/internal/store"
	"github.com/relcut/relcut/internal/version"
)

// Repo is the slice of the tag repository adapter the orchestrator needs.
// *gitrepo.Repository satisfies it; tests substitute a fake.
type Repo interface {
	ListVersionTags() ([]version.Version, error)
	FetchTags(ctx context.Context) error
	CommitsSince(tag string) ([]string, error)
	CreateTag(name, ref string) error
	EnsureTagAbsent(ctx context.Context, name string) error
	PushTags(ctx context.Context) error
	HasUncommittedChanges() (bool, error)
	Commit(paths []string, message string) error
}

var _ Repo = (*gitrepo.Repository)(nil)

// DirtyWorkingTreeError reports uncommitted changes blocking a UAT release.
// It is raised before any mutation, so aborting on it is always safe.
type DirtyWorkingTreeError struct{}

func (e *DirtyWorkingTreeError) Error() string {
	return "working tree has uncommitted changes"
}

// Orchestrator executes release transitions against injected collaborators.
type Orchestrator struct {
	Store     *store.Store
	Repo      Repo
	Changelog *changelog.Writer
	Config    *config.Configuration

	// Out receives user-facing progress and result lines (default: os.Stdout).
	Out io.Writer

	// Now supplies the changelog entry date (default: time.Now).
	Now func() time.Time

	// Recorder and Notifier are optional; both are best-effort and never
	// fail a transition.
	Recorder *history.Recorder
	Notifier *notify.Handler
}

func (o *Orchestrator) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// UATRelease cuts a new UAT release: it bumps the revision, records the
// qualifying commits in the changelog, tags the release and moves the
// UAT marker. With no qualifying commits since the previous release the
// transition is a no-op: nothing is written, tagged or pushed.
func (o *Orchestrator) UATRelease(ctx context.Context) error {
	dirty, err := o.Repo.HasUncommittedChanges()
	if err != nil {
		return fmt.Errorf("checking working tree: %w", err)
	}
	if dirty {
		return &DirtyWorkingTreeError{}
	}

	current, err := o.Store.Read()
	if err != nil {
		return err
	}

	if err := progress.Run(o.out(), fmt.Sprintf("Fetching tags from %s", o.Config.Remote), func() error {
		return o.Repo.FetchTags(ctx)
	}); err != nil {
		return err
	}

	subjects, err := o.Repo.CommitsSince(current.String())
	if err != nil {
		return err
	}

	qualifying := changelog.Qualifying(subjects)
	if len(qualifying) == 0 {
		output.Info(o.out(), "No changes to release since %s.", current)
		return nil
	}

	next := current.NextRevision()
	if err := o.Store.Write(next); err != nil {
		return err
	}

	if err := o.Changelog.Prepend(next, o.now(), qualifying); err != nil {
		return err
	}
	output.Success(o.out(), "Changelog updated with %d entries", len(qualifying))

	if o.Config.Changelog.Commit {
		message := changelog.CommitMessage(next)
		if err := o.Repo.Commit([]string{o.Config.ChangelogFile, o.Config.VersionFile}, message); err != nil {
			return err
		}
		output.Success(o.out(), "Committed %q", message)
	}

	if err := o.Repo.CreateTag(next.String(), ""); err != nil {
		return err
	}
	output.Success(o.out(), "Tagged %s", output.Emphasize(next.String()))

	if err := o.moveMarker(ctx, o.Config.Markers.UATLatest, next.String()); err != nil {
		return err
	}

	if err := o.pushTags(ctx); err != nil {
		return err
	}

	output.Success(o.out(), "UAT release %s complete", output.Emphasize(next.String()))
	o.record(history.Entry{
		Transition: "uat",
		Before:     current.String(),
		After:      next.String(),
		Tag:        next.String(),
		Pushed:     true,
	})
	o.notifyDone(fmt.Sprintf("UAT release %s complete", next))
	return nil
}

// NextRelease starts work on the next release: Z += 1, R = 0. Only the
// version file changes.
func (o *Orchestrator) NextRelease() error {
	current, err := o.Store.Read()
	if err != nil {
		return err
	}

	next := current.NextRelease()
	if err := o.Store.Write(next); err != nil {
		return err
	}

	output.Success(o.out(), "Version is now %s", output.Emphasize(next.String()))
	o.record(history.Entry{
		Transition: "uat-next",
		Before:     current.String(),
		After:      next.String(),
	})
	return nil
}

// Generation starts a new generation: Y += 1, Z = 0, R = 0. Only the
// version file changes.
func (o *Orchestrator) Generation() error {
	current, err := o.Store.Read()
	if err != nil {
		return err
	}

	next := current.NextGeneration()
	if err := o.Store.Write(next); err != nil {
		return err
	}

	output.Success(o.out(), "Version is now %s", output.Emphasize(next.String()))
	o.record(history.Entry{
		Transition: "generation",
		Before:     current.String(),
		After:      next.String(),
	})
	return nil
}

// ErrNoVersionTags reports a PROD promotion with nothing to promote.
var ErrNoVersionTags = fmt.Errorf("no version tags exist to promote")

// SelectTag picks one version from a descending list of existing tags.
// The CLI supplies an interactive chooser; tests supply a canned one.
type SelectTag func(tags []version.Version) (version.Version, error)

// ProdRelease promotes an existing UAT tag to production by moving the
// production markers to it. The version file is untouched.
func (o *Orchestrator) ProdRelease(ctx context.Context, selectTag SelectTag) error {
	if err := progress.Run(o.out(), fmt.Sprintf("Fetching tags from %s", o.Config.Remote), func() error {
		return o.Repo.FetchTags(ctx)
	}); err != nil {
		return err
	}

	tags, err := o.Repo.ListVersionTags()
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return ErrNoVersionTags
	}

	selected, err := selectTag(tags)
	if err != nil {
		return err
	}

	if err := o.moveMarker(ctx, o.Config.Markers.ProdLatest, selected.String()); err != nil {
		return err
	}
	if err := o.moveMarker(ctx, selected.ProductionMarker(), selected.String()); err != nil {
		return err
	}

	if err := o.pushTags(ctx); err != nil {
		return err
	}

	output.Success(o.out(), "Promoted %s to production", output.Emphasize(selected.String()))
	o.record(history.Entry{
		Transition: "prod",
		Before:     selected.String(),
		After:      selected.String(),
		Tag:        selected.String(),
		Pushed:     true,
	})
	o.notifyDone(fmt.Sprintf("%s promoted to production", selected))
	return nil
}

// moveMarker repoints a marker tag at ref. Missing markers are fine: the
// delete half is idempotent, so a first move behaves like any other.
func (o *Orchestrator) moveMarker(ctx context.Context, marker, ref string) error {
	if err := o.Repo.EnsureTagAbsent(ctx, marker); err != nil {
		return err
	}
	if err := o.Repo.CreateTag(marker, ref); err != nil {
		return fmt.Errorf("moving marker %q: %w", marker, err)
	}
	output.Success(o.out(), "Moved %s to %s", output.Emphasize(marker), ref)
	return nil
}

// pushTags pushes all tags, reporting that earlier mutations stand when
// the push fails.
func (o *Orchestrator) pushTags(ctx context.Context) error {
	err := progress.Run(o.out(), fmt.Sprintf("Pushing tags to %s", o.Config.Remote), func() error {
		return o.Repo.PushTags(ctx)
	})
	if err != nil {
		output.Warning(o.out(), "Push failed; local version file, changelog and tags keep their new state.")
		return err
	}
	return nil
}

// record appends a history entry when recording is enabled.
func (o *Orchestrator) record(entry history.Entry) {
	if o.Recorder == nil {
		return
	}
	entry.RunID = history.NewRunID()
	entry.Timestamp = o.now()
	o.Recorder.Record(entry)
}

// notifyDone fires the optional desktop notification.
func (o *Orchestrator) notifyDone(message string) {
	if o.Notifier == nil {
		return
	}
	o.Notifier.ReleaseCompleted(message)
}
