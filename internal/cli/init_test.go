package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInitIn(t *testing.T, dir string, dryRun bool) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	var out bytes.Buffer
	initCmd.SetOut(&out)
	t.Cleanup(func() { initCmd.SetOut(nil) })

	require.NoError(t, runInit(initCmd, dryRun))
	return out.String()
}

func TestInitCommand(t *testing.T) {
	t.Run("writes the default config", func(t *testing.T) {
		dir := t.TempDir()
		out := runInitIn(t, dir, false)
		assert.Contains(t, out, "Wrote")

		data, err := os.ReadFile(filepath.Join(dir, ".relcut", "config.yml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "version_file: version.txt")
		assert.Contains(t, string(data), "RELCUT_")
	})

	t.Run("never overwrites an existing config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".relcut"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".relcut", "config.yml"), []byte("remote: upstream\n"), 0o644))

		out := runInitIn(t, dir, false)
		assert.Contains(t, out, "already exists")

		data, err := os.ReadFile(filepath.Join(dir, ".relcut", "config.yml"))
		require.NoError(t, err)
		assert.Equal(t, "remote: upstream\n", string(data))
	})

	t.Run("migrates legacy JSON", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".relcut"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".relcut", "config.json"), []byte(`{"remote":"legacy"}`), 0o644))

		out := runInitIn(t, dir, false)
		assert.Contains(t, out, "Migrated")

		data, err := os.ReadFile(filepath.Join(dir, ".relcut", "config.yml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "migrated from legacy JSON")
		assert.Contains(t, string(data), "remote: legacy")

		// The JSON file stays for manual removal.
		assert.FileExists(t, filepath.Join(dir, ".relcut", "config.json"))
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		out := runInitIn(t, dir, true)
		assert.Contains(t, out, "Would write")
		assert.NoFileExists(t, filepath.Join(dir, ".relcut", "config.yml"))
	})
}
