package config

// GetDefaults returns the built-in configuration values. Every key a
// config file or environment variable can override appears here.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"version_file":          "version.txt",
		"changelog_file":        "CHANGELOG.md",
		"remote":                "origin",
		"markers.uat_latest":    "UAT-LATEST",
		"markers.prod_latest":   "PRODUCTION-LATEST",
		"changelog.commit":      true,
		"history.enabled":       true,
		"history.max_entries":   200,
		"notifications.enabled": false,
		"notifications.type":    "both",
	}
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# relcut configuration
# Project config: .relcut/config.yml — user config: ~/.config/relcut/config.yml
# Every key can also be set via RELCUT_* environment variables
# (nested keys use double underscores, e.g. RELCUT_HISTORY__MAX_ENTRIES=50).

version_file: version.txt             # File holding the current X.Y.Z.R version
changelog_file: CHANGELOG.md          # Changelog maintained by UAT releases
remote: origin                        # Git remote used for tag exchange

# Marker tag names
markers:
  uat_latest: UAT-LATEST              # Moved to every new UAT release tag
  prod_latest: PRODUCTION-LATEST      # Moved on PROD promotion

# Changelog behavior
changelog:
  commit: true                        # Commit changelog + version file after a UAT release

# Release history
history:
  enabled: true                       # Record release runs
  max_entries: 200                    # Oldest entries are pruned past this limit

# Desktop notifications (opt-in)
notifications:
  enabled: false                      # Notify after a completed release
  type: both                          # sound | visual | both
  sound_file: ""                      # Custom sound file path (empty = system default)
`
}
