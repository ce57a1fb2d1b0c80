package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/courtboard/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a courtboard configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  courtboard validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := config.BuildOptions(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	locale := cfg.Locale
	if locale == "" {
		locale = "zh-Hans"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Status URL:    %s\n", cfg.StatusURL)
	fmt.Printf("  Schema:        %s\n", cfg.Schema)
	fmt.Printf("  Port:          %d\n", cfg.Port)
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval.Duration())
	fmt.Printf("  Locale:        %s\n", locale)
	fmt.Printf("  Targets:       %s, %s\n", cfg.Targets.Status, cfg.Targets.List)

	return nil
}
