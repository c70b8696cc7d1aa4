package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Version
		wantErr  bool
	}{
		"simple version": {
			input:    "4.1.2.7",
			expected: Version{4, 1, 2, 7},
		},
		"all zeros": {
			input:    "0.0.0.0",
			expected: Version{0, 0, 0, 0},
		},
		"multi digit components": {
			input:    "4.12.0.103",
			expected: Version{4, 12, 0, 103},
		},
		"too few components": {
			input:   "4.1.2",
			wantErr: true,
		},
		"too many components": {
			input:   "4.1.2.7.9",
			wantErr: true,
		},
		"non numeric component": {
			input:   "4.1.x.7",
			wantErr: true,
		},
		"negative component": {
			input:   "4.1.-2.7",
			wantErr: true,
		},
		"signed component": {
			input:   "4.1.+2.7",
			wantErr: true,
		},
		"empty component": {
			input:   "4..2.7",
			wantErr: true,
		},
		"empty string": {
			input:   "",
			wantErr: true,
		},
		"surrounding whitespace": {
			input:   " 4.1.2.7",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, Version{}, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{"0.0.0.0", "4.1.2.7", "4.1.2.10", "12.34.56.78"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, input, v.String())

			again, err := Parse(v.String())
			require.NoError(t, err)
			assert.Equal(t, v, again)
		})
	}
}

func TestTransitions(t *testing.T) {
	tests := map[string]struct {
		start    Version
		apply    func(Version) Version
		expected Version
	}{
		"next revision bumps only R": {
			start:    Version{4, 1, 2, 7},
			apply:    Version.NextRevision,
			expected: Version{4, 1, 2, 8},
		},
		"next revision from zero": {
			start:    Version{4, 0, 0, 0},
			apply:    Version.NextRevision,
			expected: Version{4, 0, 0, 1},
		},
		"next release bumps Z and zeroes R": {
			start:    Version{4, 1, 2, 7},
			apply:    Version.NextRelease,
			expected: Version{4, 1, 3, 0},
		},
		"next generation bumps Y and zeroes Z and R": {
			start:    Version{4, 1, 2, 7},
			apply:    Version.NextGeneration,
			expected: Version{4, 2, 0, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.apply(tt.start))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := map[string]struct {
		a, b     string
		expected int
	}{
		"equal":                         {"4.1.2.7", "4.1.2.7", 0},
		"revision orders last":          {"4.1.2.7", "4.1.2.8", -1},
		"release outranks revision":     {"4.1.3.0", "4.1.2.99", 1},
		"generation outranks release":   {"4.2.0.0", "4.1.99.99", 1},
		"double digit beats single":     {"4.1.2.10", "4.1.2.9", 1},
		"numeric not lexicographic ord": {"4.1.2.100", "4.1.2.20", 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParse(tt.a).Compare(MustParse(tt.b)))
		})
	}
}

func TestSortDescending(t *testing.T) {
	versions := []Version{
		MustParse("4.1.2.9"),
		MustParse("4.1.2.10"),
		MustParse("3.9.9.9"),
		MustParse("4.1.3.0"),
	}

	SortDescending(versions)

	expected := []Version{
		MustParse("4.1.3.0"),
		MustParse("4.1.2.10"),
		MustParse("4.1.2.9"),
		MustParse("3.9.9.9"),
	}
	assert.Equal(t, expected, versions)
}

func TestProductionMarker(t *testing.T) {
	assert.Equal(t, "4.1.2.PRODUCTION", MustParse("4.1.2.7").ProductionMarker())
	assert.Equal(t, "0.0.0.PRODUCTION", Version{}.ProductionMarker())
}

func TestTextMarshaling(t *testing.T) {
	v := MustParse("4.1.2.7")

	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "4.1.2.7", string(text))

	var parsed Version
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, v, parsed)

	malformed := parsed
	require.Error(t, malformed.UnmarshalText([]byte("not-a-version")))
	assert.Equal(t, v, malformed, "failed unmarshal must leave value unchanged")
}
