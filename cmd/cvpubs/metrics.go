package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metricsCmd)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show paper count, citations and h-index",
	Long: `Show the summary metrics printed at the top of the publications section.

Examples:
  cvpubs metrics
  cvpubs metrics --human`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	b := newBuilder(mustLoadConfig())

	summary, err := b.Metrics(cmd.Context())
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Papers:    %d\n", summary.Papers)
		outputHuman("Citations: %d\n", summary.Citations)
		outputHuman("h-index:   %d\n", summary.HIndex)
	} else {
		outputJSON(summary)
	}
	return nil
}
