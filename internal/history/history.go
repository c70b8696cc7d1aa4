// Package history records completed release runs in a YAML file under the
// user's state directory. Recording is best-effort: a release never fails
// because its history entry could not be written.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// historyFileName is the file holding recorded runs inside the state dir.
const historyFileName = "history.yml"

// Entry is one recorded release run.
type Entry struct {
	// RunID is a timestamp-prefixed unique identifier for the run.
	RunID string `yaml:"run_id"`
	// Timestamp is when the transition completed.
	Timestamp time.Time `yaml:"timestamp"`
	// Transition names the release action: uat, uat-next, prod, generation.
	Transition string `yaml:"transition"`
	// Before and After hold the version file content around the transition.
	Before string `yaml:"before"`
	After  string `yaml:"after"`
	// Tag is the version tag created or promoted, when applicable.
	Tag string `yaml:"tag,omitempty"`
	// Pushed reports whether tags reached the remote.
	Pushed bool `yaml:"pushed"`
}

// File is the on-disk shape of the history file.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// NewRunID creates a unique run ID with a timestamp prefix,
// e.g. "20260315_093000_1a2b3c4d".
func NewRunID() string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s", timestamp, uuid.New().String()[:8])
}

// Path returns the history file path inside stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, historyFileName)
}

// Load reads the history file from stateDir. A missing file yields an
// empty history, not an error.
func Load(stateDir string) (*File, error) {
	data, err := os.ReadFile(Path(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &f, nil
}

// Save writes the history file to stateDir, creating the directory as
// needed.
func Save(stateDir string, f *File) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(Path(stateDir), data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// Clear removes the history file. A missing file is not an error.
func Clear(stateDir string) error {
	if err := os.Remove(Path(stateDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}
