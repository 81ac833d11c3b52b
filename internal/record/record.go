// Package record defines the bibliographic record type shared by the
// retrieval, classification and rendering stages.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CollaborationMarker is the leading token that identifies a collaboration
// name such as "The LSST Dark Energy Science Collaboration".
const CollaborationMarker = "The"

// Record represents one publication as returned by ADS.
// JSON tags use the ADS field names so API documents and snapshot lines
// decode into the same struct.
type Record struct {
	Title         []string `json:"title"`
	Author        []string `json:"author"` // Authorship order; rewritten once by mangling
	Year          int      `json:"year"`
	Pub           string   `json:"pub,omitempty"` // Journal or preprint server
	Page          []string `json:"page,omitempty"`
	Volume        string   `json:"volume,omitempty"`
	DOI           []string `json:"doi,omitempty"`
	Bibcode       string   `json:"bibcode"`
	CitationCount int      `json:"citation_count"`
	PubDate       string   `json:"pubdate"` // YYYY-MM-DD, day/month may be 00
}

// FirstTitle returns the first title entry, or "" if there is none.
func (r *Record) FirstTitle() string {
	if len(r.Title) == 0 {
		return ""
	}
	return r.Title[0]
}

// FirstPage returns the first page entry, or "" if there is none.
func (r *Record) FirstPage() string {
	if len(r.Page) == 0 {
		return ""
	}
	return r.Page[0]
}

// IsCollaboration reports whether the record's first author is a
// collaboration rather than an individual.
func (r *Record) IsCollaboration() bool {
	if len(r.Author) == 0 {
		return false
	}
	return IsCollaborationName(r.Author[0])
}

// IsCollaborationName reports whether an author string names a collaboration.
func IsCollaborationName(name string) bool {
	fields := strings.Fields(name)
	return len(fields) > 0 && fields[0] == CollaborationMarker
}

// UnmarshalJSON accepts the year either as a number or as a string,
// since ADS returns "2023" while snapshots store 2023.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		*alias
		Year json.RawMessage `json:"year"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	year, err := parseYear(aux.Year)
	if err != nil {
		return fmt.Errorf("record %s: %w", r.Bibcode, err)
	}
	r.Year = year
	return nil
}

func parseYear(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("parsing year: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		year, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("parsing year %q: %w", s, err)
		}
		return year, nil
	}

	var year int
	if err := json.Unmarshal(raw, &year); err != nil {
		return 0, fmt.Errorf("parsing year: %w", err)
	}
	return year, nil
}
