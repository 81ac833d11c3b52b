// Package author canonicalizes author names and shortens author lists for
// compact display in a publication list.
package author

import (
	"strings"
	"unicode/utf8"

	"github.com/matsen/cvpubs/internal/record"
)

// Canonicalizer maps author name spellings onto one display form.
type Canonicalizer struct {
	Name string // Canonical display name, e.g. "Crenshaw J. F."

	variations map[string]bool // Spellings that map directly to Name
}

// NewCanonicalizer creates a Canonicalizer for the given display name and
// its known variations.
func NewCanonicalizer(name string, variations []string) *Canonicalizer {
	c := &Canonicalizer{
		Name:       name,
		variations: make(map[string]bool, len(variations)),
	}
	for _, v := range variations {
		c.variations[v] = true
	}
	return c
}

// Canonical returns the display form of an author name.
//
// Supported inputs:
//   - "The XYZ Collaboration"   → unchanged (collaboration names are never split)
//   - any configured variation  → the canonical Name
//   - "Yu"                      → unchanged (no comma, cannot split)
//   - "Crenshaw, John Franklin" → "Crenshaw J. F."
//
// Only the first comma separates last from given names; suffixes and
// hyphenated names get no special treatment.
func (c *Canonicalizer) Canonical(name string) string {
	if record.IsCollaborationName(name) {
		return name
	}

	if c.variations[name] {
		return c.Name
	}

	idx := strings.Index(name, ",")
	if idx < 0 {
		return name
	}

	last := strings.TrimSpace(name[:idx])
	given := strings.Fields(name[idx+1:])

	parts := make([]string, 0, len(given)+1)
	parts = append(parts, last)
	for _, g := range given {
		r, _ := utf8.DecodeRuneInString(g)
		parts = append(parts, string(r)+".")
	}
	return strings.Join(parts, " ")
}
