package main

import (
	"github.com/matsen/cvpubs/internal/classify"
	"github.com/matsen/cvpubs/internal/export"
	"github.com/spf13/cobra"
)

var tiersOnly string

func init() {
	tiersCmd.Flags().StringVar(&tiersOnly, "tier", "", "Show only one tier (primary, secondary, tertiary)")
	rootCmd.AddCommand(tiersCmd)
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show how papers are classified",
	Long: `Show which papers land in each tier after author-list shortening and
DOI overrides, newest first. Useful for deciding which DOIs to add to the
overrides section of cvpubs.yml.

Tiers:
  primary    First and second author
  secondary  Co-author with major contributions
  tertiary   Other co-author papers (including collaboration papers)

Examples:
  cvpubs tiers
  cvpubs tiers --tier secondary --human`,
	Args: cobra.NoArgs,
	RunE: runTiers,
}

func runTiers(cmd *cobra.Command, args []string) error {
	show := classify.AllTiers[:]
	if tiersOnly != "" {
		t, err := classify.ParseTier(tiersOnly)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		show = []classify.Tier{t}
	}

	b := newBuilder(mustLoadConfig())
	tiers, err := b.Classify(cmd.Context())
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		for _, t := range show {
			recs := tiers.Get(t)
			outputHuman("%s (%d)\n", export.TierLabel(t), len(recs))
			for i, r := range recs {
				outputHuman("%3d. %s  %s\n", len(recs)-i, r.PubDate, truncateString(r.FirstTitle(), TitleMaxLen))
				outputHuman("     %s\n", formatAuthors(r.Author))
			}
			outputHuman("\n")
		}
		return nil
	}

	result := make(map[string][]TierEntry, len(show))
	for _, t := range show {
		entries := make([]TierEntry, 0, len(tiers.Get(t)))
		for _, r := range tiers.Get(t) {
			entries = append(entries, newTierEntry(r))
		}
		result[t.String()] = entries
	}
	outputJSON(result)
	return nil
}
