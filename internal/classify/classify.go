package classify

import (
	"slices"
	"strings"

	"github.com/matsen/cvpubs/internal/record"
)

// Tiers holds classified records, indexed by Tier.
type Tiers [numTiers][]*record.Record

// Get returns the records in a tier.
func (t *Tiers) Get(tier Tier) []*record.Record {
	return t[tier]
}

// Len returns the total number of classified records.
func (t *Tiers) Len() int {
	n := 0
	for _, recs := range t {
		n += len(recs)
	}
	return n
}

// Classify partitions records into tiers.
//
// Override DOIs are checked first, in tier order. Without an override,
// collaboration papers are tertiary, papers listing name first or second
// in the mangled author list are primary, and everything else is
// secondary. Records must already have been mangled.
//
// Each tier is sorted by publication date, newest first; records with
// equal dates keep their input order.
func Classify(records []*record.Record, name string, overrides *Overrides) Tiers {
	var tiers Tiers
	for _, r := range records {
		t := classifyOne(r, name, overrides)
		tiers[t] = append(tiers[t], r)
	}

	for _, recs := range tiers {
		slices.SortStableFunc(recs, func(a, b *record.Record) int {
			return strings.Compare(b.PubDate, a.PubDate)
		})
	}
	return tiers
}

func classifyOne(r *record.Record, name string, overrides *Overrides) Tier {
	if t, ok := overrides.Match(r.DOI); ok {
		return t
	}

	switch {
	case r.IsCollaboration():
		return Tertiary
	case authorAt(r, 0) == name || authorAt(r, 1) == name:
		return Primary
	default:
		return Secondary
	}
}

func authorAt(r *record.Record, i int) string {
	if i < len(r.Author) {
		return r.Author[i]
	}
	return ""
}
