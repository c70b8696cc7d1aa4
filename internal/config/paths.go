package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relcut/config.yml
// - macOS: ~/Library/Application Support/relcut/config.yml
// - Windows: %APPDATA%\relcut\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relcut", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file:
// .relcut/config.yml in the current directory or the nearest ancestor
// holding one, so relcut finds the project config from any subdirectory.
func ProjectConfigPath() string {
	return findProjectFile("config.yml")
}

// LegacyUserConfigPath returns the path to the legacy user-level JSON
// config file at ~/.relcut/config.json.
func LegacyUserConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".relcut", "config.json"), nil
}

// LegacyProjectConfigPath returns the path to the legacy project-level
// JSON config file, .relcut/config.json, discovered the same way as the
// YAML config.
func LegacyProjectConfigPath() string {
	return findProjectFile("config.json")
}

// findProjectFile ascends from the working directory looking for
// .relcut/<name>. When no ancestor has the file, the current-directory
// location is returned so a fresh project reads and writes its config
// where relcut runs.
func findProjectFile(name string) string {
	fallback := filepath.Join(".relcut", name)
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}
	for {
		candidate := filepath.Join(dir, ".relcut", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}
		dir = parent
	}
}

// DefaultStateDir returns the directory holding the release history file.
// Honors XDG_STATE_HOME, falling back to ~/.local/state/relcut.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "relcut")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".relcut", "state")
	}
	return filepath.Join(home, ".local", "state", "relcut")
}
