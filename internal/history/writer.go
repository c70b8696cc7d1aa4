package history

import (
	"fmt"
	"os"
)

// Recorder appends release runs to the history file with automatic pruning.
type Recorder struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
}

// NewRecorder creates a new history recorder.
func NewRecorder(stateDir string, maxEntries int) *Recorder {
	return &Recorder{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
	}
}

// Record adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
// Errors are non-fatal: they are written to stderr and don't fail the release.
func (r *Recorder) Record(entry Entry) {
	if err := r.record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record release history: %v\n", err)
	}
}

func (r *Recorder) record(entry Entry) error {
	f, err := Load(r.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	f.Entries = append(f.Entries, entry)

	// Prune oldest entries if over limit
	if r.MaxEntries > 0 && len(f.Entries) > r.MaxEntries {
		excess := len(f.Entries) - r.MaxEntries
		f.Entries = f.Entries[excess:]
	}

	if err := Save(r.StateDir, f); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}
