package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Follower streams history entries as they are appended to the file.
// It uses fsnotify for efficient change detection with a polling fallback
// for missed events.
type Follower struct {
	stateDir string
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// NewFollower creates a Follower for the history file in stateDir.
// The file does not need to exist yet; the follower waits for creation.
func NewFollower(stateDir string) (*Follower, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Follower{
		stateDir: stateDir,
		watcher:  watcher,
	}, nil
}

// Follow returns a channel that receives entries appended after the call.
// The channel is closed when the context is cancelled or Close is called.
func (f *Follower) Follow(ctx context.Context) (<-chan Entry, error) {
	seen, err := f.entryCount()
	if err != nil {
		return nil, err
	}

	entries := make(chan Entry, 16)
	go f.followLoop(ctx, entries, seen)
	return entries, nil
}

// followLoop watches the file and forwards entries past the seen count.
func (f *Follower) followLoop(ctx context.Context, entries chan<- Entry, seen int) {
	defer close(entries)

	if err := os.MkdirAll(f.stateDir, 0o755); err != nil {
		return
	}
	if err := f.watcher.Add(f.stateDir); err != nil {
		return
	}

	// Poll periodically in case events are missed
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	path := Path(f.stateDir)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name == path && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				seen = f.emitNew(ctx, entries, seen)
			}
		case <-ticker.C:
			seen = f.emitNew(ctx, entries, seen)
		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			// Keep going; polling covers reads the watcher missed.
		}
	}
}

// emitNew sends entries beyond the seen count and returns the new count.
// A shrunken file (cleared history) resets the count.
func (f *Follower) emitNew(ctx context.Context, entries chan<- Entry, seen int) int {
	file, err := Load(f.stateDir)
	if err != nil {
		return seen
	}

	if len(file.Entries) < seen {
		seen = len(file.Entries)
		return seen
	}

	for _, entry := range file.Entries[seen:] {
		select {
		case <-ctx.Done():
			return seen
		case entries <- entry:
			seen++
		}
	}
	return seen
}

// entryCount returns the number of entries currently in the file.
func (f *Follower) entryCount() (int, error) {
	if _, err := os.Stat(filepath.Dir(Path(f.stateDir))); os.IsNotExist(err) {
		return 0, nil
	}
	file, err := Load(f.stateDir)
	if err != nil {
		return 0, err
	}
	return len(file.Entries), nil
}

// Close stops the follower and releases resources.
func (f *Follower) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}
