package main

import (
	"github.com/matsen/cvpubs/internal/storage"
	"github.com/spf13/cobra"
)

var fetchLibrary string

func init() {
	fetchCmd.Flags().StringVar(&fetchLibrary, "library", "", "ADS library id (default: library from cvpubs.yml)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <snapshot.jsonl>",
	Short: "Save an ADS library to a JSONL snapshot",
	Long: `Download every record in the ADS library and write the raw records
(before author-list shortening) to a JSONL file, one record per line.

Pass the file to other commands with --snapshot to rebuild offline.

Examples:
  cvpubs fetch library.jsonl
  cvpubs fetch library.jsonl --library p11_8_nYTjuAD1LbKfZC5g
  cvpubs build --snapshot library.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	out := args[0]

	library := fetchLibrary
	if library == "" {
		library = mustLoadConfig().Library
	}

	logger := newLogger()
	records, err := newADSClient(logger).Fetch(cmd.Context(), library)
	if err != nil {
		exitWithError(exitCodeFor(err), "fetching library %s: %v", library, err)
	}

	if err := storage.WriteAll(out, records); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Saved %d records from %s to %s\n", len(records), library, out)
	} else {
		outputJSON(FetchResponse{
			Status:  "saved",
			Path:    out,
			Library: library,
			Records: len(records),
		})
	}
	return nil
}
