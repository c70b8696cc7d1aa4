// Package store reads and writes the single-line version file that records
// the current release version. The file holds exactly one "X.Y.Z.R" tuple;
// history beyond it lives only in git tags.
package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/relcut/relcut/internal/version"
)

// CorruptVersionFileError reports a version file whose content is not a
// well-formed four-component version. It is fatal: no recovery or repair
// is attempted.
type CorruptVersionFileError struct {
	Path    string
	Content string
	Reason  string
}

func (e *CorruptVersionFileError) Error() string {
	return fmt.Sprintf("version file %s is corrupt (%q): %s", e.Path, e.Content, e.Reason)
}

// Store provides access to the version file at a fixed path.
type Store struct {
	Path string
}

// New creates a Store for the given version file path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Read parses the version file. Surrounding whitespace and the trailing
// newline are ignored; anything else malformed yields a
// *CorruptVersionFileError.
func (s *Store) Read() (version.Version, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return version.Version{}, fmt.Errorf("reading version file: %w", err)
	}

	content := strings.TrimSpace(string(data))
	v, err := version.Parse(content)
	if err != nil {
		return version.Version{}, &CorruptVersionFileError{
			Path:    s.Path,
			Content: content,
			Reason:  err.Error(),
		}
	}
	return v, nil
}

// Write overwrites the version file with v in a single write call.
// There is no partial-write recovery; a failed write leaves whatever the
// filesystem left behind.
func (s *Store) Write(v version.Version) error {
	if err := os.WriteFile(s.Path, []byte(v.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing version file: %w", err)
	}
	return nil
}
