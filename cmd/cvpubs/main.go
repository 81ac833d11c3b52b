// Package main provides the cvpubs CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verbose enables debug logging on stderr
	verbose bool
	// configPath overrides the cvpubs.yml lookup
	configPath string
	// snapshotPath reads records from a JSONL snapshot instead of ADS
	snapshotPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cvpubs",
	Short: "Build a CV publication list from an ADS library",
	Long: `cvpubs builds the publications section of a LaTeX CV from a NASA ADS
library.

Author lists are shortened with your name in bold, papers are grouped into
first/second-author, major-contribution and other co-author lists, and the
section opens with your paper count, citation count and h-index.

Configuration is read from cvpubs.yml (searched upward from the current
directory). All commands except build output JSON by default; use --human
for human-readable output.

Environment Variables:
  ADS_API_TOKEN  Your ADS API token (may also be set in a .env file or in
                 ~/.config/cvpubs/config.yml as ads_api_token)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for ADS_API_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to cvpubs.yml (default: search upward)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Read records from a JSONL snapshot instead of ADS")
	rootCmd.Version = Version
}
