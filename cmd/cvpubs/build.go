package main

import (
	"github.com/spf13/cobra"
)

var buildOutput string

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output .tex path (default: output from cvpubs.yml)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the LaTeX publications section",
	Long: `Fetch the configured ADS library, classify the papers and write the
publications section to the configured output file, replacing it.

Every venue must have a registered abbreviation (see "cvpubs venue");
an unknown venue aborts the build and nothing is written.

Examples:
  cvpubs build
  cvpubs build --output cv/sections/publications.tex
  cvpubs build --snapshot library.jsonl --human`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if buildOutput != "" {
		cfg.Output = buildOutput
	}

	b := newBuilder(cfg)
	ctx := cmd.Context()

	summary, err := b.Metrics(ctx)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	path, err := b.Write(ctx)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Wrote %s: %d papers, %d citations, h-index %d\n",
			path, summary.Papers, summary.Citations, summary.HIndex)
	} else {
		outputJSON(BuildResponse{
			Status:    "written",
			Path:      path,
			Papers:    summary.Papers,
			Citations: summary.Citations,
			HIndex:    summary.HIndex,
		})
	}
	return nil
}
