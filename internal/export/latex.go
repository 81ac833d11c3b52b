// Package export renders classified publication records as a LaTeX
// publication list.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matsen/cvpubs/internal/classify"
	"github.com/matsen/cvpubs/internal/metrics"
	"github.com/matsen/cvpubs/internal/record"
	"github.com/matsen/cvpubs/internal/venue"
)

// ADSAbstractURL is the link prefix for record titles.
const ADSAbstractURL = "https://ui.adsabs.harvard.edu/abs/"

// Errors returned while bolding the canonical name in an author list.
var (
	ErrNameNotFound  = errors.New("canonical name not found in author list")
	ErrNameAmbiguous = errors.New("canonical name appears more than once in author list")
)

// Renderer formats a publication list as LaTeX.
type Renderer struct {
	Name       string                       // Canonical name to bold
	Now        func() time.Time             // Clock for the "As of" sentence
	Abbreviate func(string) (string, error) // Venue abbreviation lookup
}

// NewRenderer creates a Renderer using the wall clock and the AAS venue table.
func NewRenderer(name string) *Renderer {
	return &Renderer{
		Name:       name,
		Now:        time.Now,
		Abbreviate: venue.Abbreviate,
	}
}

// TierLabel returns the bold heading printed above a tier's list.
func TierLabel(t classify.Tier) string {
	switch t {
	case classify.Primary:
		return "First and Second Author:"
	case classify.Secondary:
		return "Co-Author with Major Contributions:"
	default:
		return "Other Co-Author Papers:"
	}
}

// Render produces the complete publications section. Empty tiers are
// omitted. Nothing is returned if any entry fails to render.
func (r *Renderer) Render(tiers *classify.Tiers, summary metrics.Summary) (string, error) {
	var b strings.Builder

	b.WriteString("\\section{Publications}\n\n")
	fmt.Fprintf(&b,
		"As of %s, I have (co-)authored %d papers, with a total of %d citations and an h-index of %d. \\vspace{2mm}\n\n",
		r.Now().Format("January 2006"), summary.Papers, summary.Citations, summary.HIndex)

	for _, t := range classify.AllTiers {
		recs := tiers.Get(t)
		if len(recs) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\\textbf{%s}\n", TierLabel(t))
		b.WriteString("\\begin{etaremune}\n")
		for _, rec := range recs {
			entry, err := r.Entry(rec)
			if err != nil {
				return "", err
			}
			b.WriteString("\\item ")
			b.WriteString(entry)
		}
		b.WriteString("\\end{etaremune}\n\n")
	}

	return b.String(), nil
}

// Entry formats a single record: linked title, authors with the canonical
// name in bold, year, and the venue segment when the record has a venue.
func (r *Renderer) Entry(rec *record.Record) (string, error) {
	var b strings.Builder

	// Title
	fmt.Fprintf(&b, "\\href{%s%s}{\\textit{%s}} \\\\ \n", ADSAbstractURL, rec.Bibcode, rec.FirstTitle())

	// Authors
	authors, err := r.boldName(strings.Join(rec.Author, ", "))
	if err != nil {
		return "", fmt.Errorf("record %s: %w", rec.Bibcode, err)
	}
	fmt.Fprintf(&b, "%s (%d)", authors, rec.Year)

	// Venue
	if rec.Pub != "" {
		abbrev, err := r.Abbreviate(rec.Pub)
		if err != nil {
			return "", fmt.Errorf("record %s: %w", rec.Bibcode, err)
		}
		b.WriteString(" \n")
		if abbrev != venue.Preprint {
			b.WriteString(escapeLatex(abbrev) + " ")
		}
		if rec.Volume != "" {
			b.WriteString(rec.Volume + " ")
		}
		if page := rec.FirstPage(); page != "" {
			b.WriteString(page + " ")
		}
	} else {
		b.WriteString(" ")
	}

	b.WriteString("\n\n")
	return b.String(), nil
}

// boldName wraps the single occurrence of the canonical name in \textbf.
func (r *Renderer) boldName(authors string) (string, error) {
	switch n := strings.Count(authors, r.Name); {
	case n == 0:
		return "", fmt.Errorf("%w: %q", ErrNameNotFound, authors)
	case n > 1:
		return "", fmt.Errorf("%w: %q", ErrNameAmbiguous, authors)
	}
	return strings.Replace(authors, r.Name, "\\textbf{"+r.Name+"}", 1), nil
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
