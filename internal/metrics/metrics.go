// Package metrics computes career summary statistics for a publication list.
package metrics

import (
	"slices"

	"github.com/matsen/cvpubs/internal/record"
)

// Summary holds the aggregate metrics shown above the publication list.
type Summary struct {
	Papers    int `json:"papers"`
	Citations int `json:"citations"`
	HIndex    int `json:"h_index"`
}

// Compute derives the paper count, total citations and h-index.
func Compute(records []*record.Record) Summary {
	cites := make([]int, len(records))
	total := 0
	for i, r := range records {
		cites[i] = r.CitationCount
		total += r.CitationCount
	}

	return Summary{
		Papers:    len(records),
		Citations: total,
		HIndex:    HIndex(cites),
	}
}

// HIndex returns the largest h such that h papers have at least h
// citations each. The input is not modified.
func HIndex(cites []int) int {
	sorted := slices.Clone(cites)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	h := 0
	for i, c := range sorted {
		if c < i+1 {
			break
		}
		h = i + 1
	}
	return h
}
