package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relcut/relcut/internal/config"
	"github.com/relcut/relcut/internal/output"
)

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create the project config, migrating legacy JSON when present",
	Long:         `Writes a fully commented .relcut/config.yml in the current directory. A legacy .relcut/config.json is converted to YAML instead and left in place for manual removal. An existing YAML config is never overwritten.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return runInit(cmd, dryRun)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("dry-run", false, "Report what would be written without writing")
}

// runInit creates the project config in the current directory. Discovery
// is deliberately not used here: init sets up the directory it runs in,
// even inside a project that has a config further up.
func runInit(cmd *cobra.Command, dryRun bool) error {
	out := cmd.OutOrStdout()
	yamlPath := filepath.Join(".relcut", "config.yml")
	legacyPath := filepath.Join(".relcut", "config.json")

	if fileExists(legacyPath) {
		result, err := config.MigrateJSONToYAML(legacyPath, yamlPath, dryRun)
		if err != nil {
			return fmt.Errorf("migrating legacy config: %w", err)
		}
		if result.Success {
			output.Success(out, "%s", result.Message)
			output.Info(out, "Delete %s once you have verified the migrated config.", legacyPath)
		} else {
			output.Info(out, "%s", result.Message)
		}
		return nil
	}

	if fileExists(yamlPath) {
		output.Info(out, "Config already exists at %s.", yamlPath)
		return nil
	}
	if dryRun {
		output.Info(out, "Would write the default config to %s.", yamlPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(yamlPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	output.Success(out, "Wrote %s.", yamlPath)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
