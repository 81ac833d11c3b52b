package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/cvpubs/internal/record"
)

// TitleMaxLen is the title truncation length in human-readable listings.
const TitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildResponse is the response for the build command.
type BuildResponse struct {
	Status    string `json:"status"`
	Path      string `json:"path"`
	Papers    int    `json:"papers"`
	Citations int    `json:"citations"`
	HIndex    int    `json:"h_index"`
}

// FetchResponse is the response for the fetch command.
type FetchResponse struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Library string `json:"library"`
	Records int    `json:"records"`
}

// TierEntry is one record in the tiers listing.
type TierEntry struct {
	Bibcode string   `json:"bibcode"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	PubDate string   `json:"pubdate"`
	DOI     []string `json:"doi,omitempty"`
}

// VenueResponse is the response for the venue command.
type VenueResponse struct {
	Venue        string `json:"venue"`
	Normalized   string `json:"normalized"`
	Abbreviation string `json:"abbreviation"`
}

// newTierEntry converts a record for the tiers listing.
func newTierEntry(r *record.Record) TierEntry {
	return TierEntry{
		Bibcode: r.Bibcode,
		Title:   r.FirstTitle(),
		Authors: r.Author,
		PubDate: r.PubDate,
		DOI:     r.DOI,
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatAuthors joins a mangled author list for display.
func formatAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}
