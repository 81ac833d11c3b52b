// Package classify sorts publication records into authorship tiers.
package classify

import (
	"fmt"
	"strings"
)

// Tier is an authorship-contribution category.
type Tier int

const (
	Primary   Tier = iota // First or second author
	Secondary             // Co-author with major contributions
	Tertiary              // Other co-author papers, including collaborations

	numTiers = 3
)

// AllTiers lists the tiers in rendering order.
var AllTiers = [numTiers]Tier{Primary, Secondary, Tertiary}

var tierNames = [numTiers]string{"primary", "secondary", "tertiary"}

// String returns the lowercase tier name used in config files.
func (t Tier) String() string {
	if t < 0 || int(t) >= numTiers {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier parses a tier name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tierNames {
		if s == name {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("invalid tier: %q (valid: %v)", s, tierNames)
}

// DOISet is a set of normalized DOIs.
type DOISet map[string]struct{}

// NewDOISet builds a set from raw DOI strings.
func NewDOISet(dois ...string) DOISet {
	s := make(DOISet, len(dois))
	for _, d := range dois {
		if n := NormalizeDOI(d); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Intersects reports whether any of the given raw DOIs is in the set.
func (s DOISet) Intersects(dois []string) bool {
	for _, d := range dois {
		if _, ok := s[NormalizeDOI(d)]; ok {
			return true
		}
	}
	return false
}

// Overrides forces tier membership by DOI. It is indexed by Tier, so
// every tier always has an entry (possibly nil).
type Overrides [numTiers]DOISet

// Set replaces the override set for a tier.
func (o *Overrides) Set(t Tier, dois ...string) {
	o[t] = NewDOISet(dois...)
}

// Match returns the highest-priority tier whose override set contains one
// of the given DOIs.
func (o *Overrides) Match(dois []string) (Tier, bool) {
	if o == nil {
		return 0, false
	}
	for _, t := range AllTiers {
		if o[t].Intersects(dois) {
			return t, true
		}
	}
	return 0, false
}

// NormalizeDOI normalizes a DOI to a consistent format for comparison.
// It removes common URL prefixes (https://doi.org/, doi:) and converts to lowercase.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return doi
}
