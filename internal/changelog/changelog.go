// Package changelog maintains the markdown changelog that accompanies each
// UAT release. Entries are prepended so the newest release is always at the
// top, and only commit subjects carrying one of the release markers are
// recorded.
package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/relcut/relcut/internal/version"
)

// Markers are the glyphs a commit subject must start with to qualify for
// the changelog: feature, fix and breaking change respectively.
var Markers = []string{"✨", "🐛", "💥"}

// Qualifying filters subjects down to the ones that start with a release
// marker, preserving their order (newest first, as git log produces them).
func Qualifying(subjects []string) []string {
	var qualifying []string
	for _, subject := range subjects {
		if hasMarker(subject) {
			qualifying = append(qualifying, subject)
		}
	}
	return qualifying
}

// hasMarker reports whether the subject's first rune is a release marker.
func hasMarker(subject string) bool {
	for _, marker := range Markers {
		if strings.HasPrefix(subject, marker) {
			return true
		}
	}
	return false
}

// Writer prepends release entries to the changelog file at Path.
type Writer struct {
	Path string
}

// NewWriter creates a Writer for the given changelog path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// CommitMessage returns the fixed-format message used when the changelog
// and version file are committed as part of a release.
func CommitMessage(v version.Version) string {
	return fmt.Sprintf("chore: update changelog for %s", v)
}

// FormatEntry renders one changelog block: a version heading with the
// release date followed by one bullet per subject.
func FormatEntry(v version.Version, date time.Time, subjects []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s)\n\n", v, date.Format("2006-01-02"))
	for _, subject := range subjects {
		fmt.Fprintf(&b, "- %s\n", subject)
	}
	b.WriteString("\n")
	return b.String()
}

// Prepend writes a new entry for v at the top of the changelog, creating
// the file when it does not exist yet. Existing content follows the new
// entry unchanged, so the file stays in reverse-chronological order.
func (w *Writer) Prepend(v version.Version, date time.Time, subjects []string) error {
	existing, err := os.ReadFile(w.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading changelog: %w", err)
	}

	entry := FormatEntry(v, date, subjects)
	content := append([]byte(entry), existing...)

	if err := os.WriteFile(w.Path, content, 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}
