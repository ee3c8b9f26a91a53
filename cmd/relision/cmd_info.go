package main

import (
	"fmt"

	"relision/internal/config"
	"relision/internal/platform"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var saveConfig bool

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the relision version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("relision %s\n", version)
		return nil
	},
}

// platformCmd reports where relision runs and keeps its files
var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the platform and configuration directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve configuration directory: %w", err)
		}
		fmt.Printf("Running on %s.\n", platform.Name())
		fmt.Printf("Configuration stored at: %s.\n", dir)
		return nil
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints config.yaml merged over the defaults, after environment overrides
(RELISION_PROMPT, RELISION_HISTORY_FILE, RELISION_DEBUG).

With --save the result is written back to config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadEnvironment()
	if err != nil {
		return err
	}

	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Print(out)

	if saveConfig {
		path := config.Path(dir)
		if err := cfg.Save(path); err != nil {
			return err
		}
		logger.Info("Configuration saved", zap.String("path", path))
		fmt.Printf("Saved to %s\n", path)
	}
	return nil
}
