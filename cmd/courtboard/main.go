// Package main is the entry point for the courtboard CLI.
//
// courtboard can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	courtboard serve -c config.yaml    # Poll and serve the dashboard
//	courtboard once -c config.yaml     # Refresh once and print the result
//	courtboard validate -c config.yaml # Validate configuration
//	courtboard version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "courtboard",
	Short: "A live room availability board",
	Long: `courtboard polls a room availability endpoint and shows which rooms
are free today and tomorrow.

It renders a status label and a room list into a web page that updates
live over Server-Sent Events.

Quick start:
  1. Create a config file (courtboard.yaml)
  2. Run: courtboard serve -c courtboard.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  status_url: http://localhost:9000/api/status
  schema: daily
  poll_interval: 15s`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this courtboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("courtboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
