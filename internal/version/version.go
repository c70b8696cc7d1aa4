// Package version implements the four-component release version managed by
// relcut. A version is written as "X.Y.Z.R" where X is the fixed platform
// component, Y the generation, Z the release and R the revision. Ordering is
// component-wise integer comparison, never string comparison.
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Version holds the four components of a release version.
// The zero value is "0.0.0.0".
type Version [4]uint

// Parse converts a string of exactly four dot-separated decimal integers
// into a Version. Signs, whitespace and missing or extra components are
// rejected. In case of errors the returned Version is the zero value.
func Parse(s string) (Version, error) {
	var v Version
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("expected 4 dot-separated components, got %d in %q", len(parts), s)
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("component %q is not a non-negative integer", p)
		}
		v[i] = uint(n)
	}
	return v, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "X.Y.Z.R".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. In case of errors,
// v is left unchanged.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Compare returns -1, 0 or 1 when v is respectively lower than, equal to
// or higher than other, comparing components left to right as integers.
func (v Version) Compare(other Version) int {
	for i := range v {
		switch {
		case v[i] < other[i]:
			return -1
		case v[i] > other[i]:
			return 1
		}
	}
	return 0
}

// NextRevision returns the version with the revision incremented.
// Used by a UAT release: X.Y.Z.R -> X.Y.Z.(R+1).
func (v Version) NextRevision() Version {
	return Version{v[0], v[1], v[2], v[3] + 1}
}

// NextRelease returns the version for starting work on the next release:
// X.Y.Z.R -> X.Y.(Z+1).0.
func (v Version) NextRelease() Version {
	return Version{v[0], v[1], v[2] + 1, 0}
}

// NextGeneration returns the version for a new generation:
// X.Y.Z.R -> X.(Y+1).0.0.
func (v Version) NextGeneration() Version {
	return Version{v[0], v[1] + 1, 0, 0}
}

// ProductionMarker returns the name of the production marker tag for this
// version's release line, e.g. "4.1.2.PRODUCTION" for 4.1.2.7.
func (v Version) ProductionMarker() string {
	return fmt.Sprintf("%d.%d.%d.PRODUCTION", v[0], v[1], v[2])
}

// SortDescending orders versions from highest to lowest in place.
func SortDescending(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})
}
