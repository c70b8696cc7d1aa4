package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relcut/relcut/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVersionFile(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "version.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return New(path)
}

func TestRead(t *testing.T) {
	tests := map[string]struct {
		content     string
		expected    version.Version
		wantCorrupt bool
	}{
		"plain version": {
			content:  "4.1.2.7",
			expected: version.MustParse("4.1.2.7"),
		},
		"trailing newline": {
			content:  "4.1.2.7\n",
			expected: version.MustParse("4.1.2.7"),
		},
		"surrounding whitespace": {
			content:  "  4.1.2.7 \n",
			expected: version.MustParse("4.1.2.7"),
		},
		"three components": {
			content:     "4.1.2\n",
			wantCorrupt: true,
		},
		"five components": {
			content:     "4.1.2.7.3\n",
			wantCorrupt: true,
		},
		"non numeric segment": {
			content:     "4.one.2.7\n",
			wantCorrupt: true,
		},
		"empty file": {
			content:     "",
			wantCorrupt: true,
		},
		"prose instead of version": {
			content:     "hello world\n",
			wantCorrupt: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := writeVersionFile(t, tt.content)

			v, err := s.Read()
			if tt.wantCorrupt {
				require.Error(t, err)
				var corrupt *CorruptVersionFileError
				require.ErrorAs(t, err, &corrupt)
				assert.Equal(t, s.Path, corrupt.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	_, err := s.Read()
	require.Error(t, err)

	var corrupt *CorruptVersionFileError
	assert.False(t, errors.As(err, &corrupt), "missing file is not a corruption error")
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "version.txt"))
	v := version.MustParse("4.1.2.10")

	require.NoError(t, s.Write(v))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, v, got)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "4.1.2.10\n", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	s := writeVersionFile(t, "4.1.2.7\n")

	require.NoError(t, s.Write(version.MustParse("4.1.2.8")))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, version.MustParse("4.1.2.8"), got)
}
