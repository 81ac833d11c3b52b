// Package venue maps journal names to their AAS standard abbreviations.
package venue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Preprint is the abbreviation shared by preprint servers. Renderers omit
// it and print only volume and page.
const Preprint = "arXiv"

// ErrUnknownVenue is matched by every *UnknownVenueError.
var ErrUnknownVenue = errors.New("unknown venue")

// UnknownVenueError reports a venue with no registered abbreviation.
type UnknownVenueError struct {
	Venue string // Name as it appeared in the record
}

func (e *UnknownVenueError) Error() string {
	return fmt.Sprintf("no abbreviation found for journal %q", e.Venue)
}

// Is makes errors.Is(err, ErrUnknownVenue) succeed.
func (e *UnknownVenueError) Is(target error) bool {
	return target == ErrUnknownVenue
}

// IsUnknown returns true if the error reports an unregistered venue.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknownVenue)
}

// abbreviations is keyed by normalized journal name.
var abbreviations = map[string]string{
	// Major astronomy journals
	"astronomical journal":                                    "AJ",
	"astrophysical journal":                                   "ApJ",
	"astrophysical journal letters":                           "ApJL",
	"astrophysical journal supplement":                        "ApJS",
	"astrophysical journal supplement series":                 "ApJS",
	"astronomy and astrophysics":                              "A&A",
	"monthly notices of the royal astronomical society":       "MNRAS",
	"publications of the astronomical society of the pacific": "PASP",
	"annual review of astronomy and astrophysics":             "ARA&A",
	"astronomy and astrophysics review":                       "A&ARv",

	// Physical Review
	"physical review d":       "PhRvD",
	"physical review letters": "PhRvL",
	"physical review":         "PhRv",

	// Nature
	"nature":           "Nature",
	"nature astronomy": "NatAs",
	"nature physics":   "NatPh",

	// Science
	"science":          "Science",
	"science advances": "SciA",

	// Solar and planetary
	"solar physics":                   "SoPh",
	"icarus":                          "Icar",
	"planetary and space science":     "P&SS",
	"space science reviews":           "SSRv",
	"journal of geophysical research": "JGR",
	"geophysical research letters":    "GeoRL",

	// Instrumentation and proceedings
	"review of scientific instruments":                      "RScI",
	"publications of the astronomical society of australia": "PASA",
	"proceedings of the spie":                               "SPIE",
	"bulletin of the american astronomical society":         "BAAS",

	// International
	"astronomy reports":                                 "ARep",
	"astronomical and astrophysical transactions":       "A&AT",
	"baltic astronomy":                                  "BaltA",
	"chinese journal of astronomy and astrophysics":     "ChJAA",
	"publications of the astronomical society of japan": "PASJ",

	// Specialized
	"living reviews in relativity":                   "LRR",
	"classical and quantum gravity":                  "CQGra",
	"general relativity and gravitation":             "GReGr",
	"astrobiology":                                   "AsBio",
	"astroparticle physics":                          "APh",
	"journal of cosmology and astroparticle physics": "JCAP",

	// Data and software
	"astronomy and computing":                         "A&C",
	"astronomical data analysis software and systems": "ADASS",

	// Preprint servers
	"arxiv e-prints": Preprint,
	"arxiv":          Preprint,
}

// Normalize lowercases a journal name and strips surrounding whitespace
// and a leading "The".
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(name, "the "); ok {
		name = rest
	}
	return strings.TrimSpace(name)
}

// Abbreviate returns the standard abbreviation for a journal name.
// Unregistered names return an *UnknownVenueError.
func Abbreviate(name string) (string, error) {
	if abbrev, ok := abbreviations[Normalize(name)]; ok {
		return abbrev, nil
	}
	return "", &UnknownVenueError{Venue: name}
}

// Entry is one row of the abbreviation table.
type Entry struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Known returns the abbreviation table sorted by normalized name.
func Known() []Entry {
	entries := make([]Entry, 0, len(abbreviations))
	for name, abbrev := range abbreviations {
		entries = append(entries, Entry{Name: name, Abbreviation: abbrev})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
