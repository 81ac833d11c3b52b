package main

import (
	"strings"

	"github.com/matsen/cvpubs/internal/venue"
	"github.com/spf13/cobra"
)

var venueList bool

func init() {
	venueCmd.Flags().BoolVar(&venueList, "list", false, "List every registered venue")
	rootCmd.AddCommand(venueCmd)
}

var venueCmd = &cobra.Command{
	Use:   "venue [journal name...]",
	Short: "Look up a journal abbreviation",
	Long: `Look up the AAS abbreviation printed for a journal. Names are matched
case-insensitively with a leading "The" ignored. Exits with status 3 if the
journal is not registered.

Examples:
  cvpubs venue The Astrophysical Journal
  cvpubs venue "Monthly Notices of the Royal Astronomical Society" --human
  cvpubs venue --list`,
	RunE: runVenue,
}

func runVenue(cmd *cobra.Command, args []string) error {
	if venueList {
		entries := venue.Known()
		if humanOutput {
			for _, e := range entries {
				outputHuman("%-8s %s\n", e.Abbreviation, e.Name)
			}
		} else {
			outputJSON(entries)
		}
		return nil
	}

	if len(args) == 0 {
		exitWithError(ExitError, "journal name required (or use --list)")
	}

	name := strings.Join(args, " ")
	abbrev, err := venue.Abbreviate(name)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("%s\n", abbrev)
	} else {
		outputJSON(VenueResponse{
			Venue:        name,
			Normalized:   venue.Normalize(name),
			Abbreviation: abbrev,
		})
	}
	return nil
}
