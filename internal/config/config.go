// Package config provides hierarchical configuration management for relcut
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relcut/config.yml) > user config (~/.config/relcut/config.yml)
// > defaults. It supports both YAML and legacy JSON formats, with migration
// utilities for transitioning from JSON to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/relcut/relcut/internal/notify"
)

// Configuration represents the relcut CLI tool configuration.
type Configuration struct {
	// VersionFile is the path to the single-line X.Y.Z.R version file,
	// relative to the repository root.
	VersionFile string `koanf:"version_file" validate:"required"`

	// ChangelogFile is the path to the markdown changelog, relative to the
	// repository root.
	ChangelogFile string `koanf:"changelog_file" validate:"required"`

	// Remote is the git remote used for tag fetch and push.
	Remote string `koanf:"remote" validate:"required"`

	// Markers names the mutable marker tags.
	Markers MarkerConfig `koanf:"markers"`

	// Changelog controls changelog side behavior.
	Changelog ChangelogConfig `koanf:"changelog"`

	// History controls release history recording.
	History HistoryConfig `koanf:"history"`

	// Notifications configures desktop notification preferences.
	Notifications notify.NotificationConfig `koanf:"notifications"`
}

// MarkerConfig names the marker tags that are moved between releases.
type MarkerConfig struct {
	UATLatest  string `koanf:"uat_latest" validate:"required"`
	ProdLatest string `koanf:"prod_latest" validate:"required"`
}

// ChangelogConfig controls how the changelog entry is recorded.
type ChangelogConfig struct {
	// Commit stages and commits the changelog and version file after a UAT
	// release, with a fixed-format message.
	Commit bool `koanf:"commit"`
}

// HistoryConfig controls release history recording.
type HistoryConfig struct {
	Enabled    bool `koanf:"enabled"`
	MaxEntries int  `koanf:"max_entries" validate:"min=0,max=100000"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relcut/config.yml)
	ProjectConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// New YAML config paths:
//   - User config: ~/.config/relcut/config.yml (XDG compliant)
//   - Project config: .relcut/config.yml
//
// Legacy JSON config paths (deprecated, triggers migration warning):
//   - User config: ~/.relcut/config.json
//   - Project config: .relcut/config.json
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
// Priority: YAML (~/.config/relcut/config.yml) > JSON (~/.relcut/config.json).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath, _ := UserConfigPath()
	legacyUserPath, _ := LegacyUserConfigPath()

	userYAMLExists := fileExists(userYAMLPath)
	legacyUserExists := fileExists(legacyUserPath)

	if userYAMLExists {
		if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
			return fmt.Errorf("loading user YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyUserPath, userYAMLPath, legacyUserExists, skipWarnings)
	} else if legacyUserExists {
		if err := loadLegacyJSONConfig(k, legacyUserPath, "user", warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy user JSON config: %w", err)
		}
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported). Supports a custom path override (for testing).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, "project", warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration.
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy %s config %s: %w", configType, path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Convert it to YAML at the new location and delete the JSON file.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML.
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Delete the legacy file to silence this warning.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELCUT_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELCUT_VERSION_FILE -> version_file,
// RELCUT_HISTORY__MAX_ENTRIES -> history.max_entries.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "RELCUT_"))
	return strings.ReplaceAll(key, "__", ".")
}
