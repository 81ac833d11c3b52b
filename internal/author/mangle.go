package author

import "github.com/matsen/cvpubs/internal/record"

// EtAl marks a truncated author list.
const EtAl = "et al."

// Including returns the marker naming an author who was truncated out of
// the displayed list.
func Including(name string) string {
	return "including " + name
}

// Mangle shortens an author list for display.
//
// Collaboration papers keep only the collaboration name followed by an
// "including" marker. Otherwise every name is canonicalized and the list
// is cut to maxAuthors. If the canonical name survived the cut, "et al."
// is appended; if not, the last kept author is dropped and "et al." plus
// an "including" marker are appended instead.
//
// The result never has more than maxAuthors+2 entries. authors must not
// be empty.
func Mangle(authors []string, c *Canonicalizer, maxAuthors int) []string {
	if isCollaboration(authors) {
		return []string{authors[0], Including(c.Name)}
	}

	n := min(len(authors), maxAuthors)
	mangled := make([]string, 0, n+2)
	found := false
	for _, a := range authors[:n] {
		canon := c.Canonical(a)
		if canon == c.Name {
			found = true
		}
		mangled = append(mangled, canon)
	}

	if found {
		return append(mangled, EtAl)
	}
	return append(mangled[:len(mangled)-1], EtAl, Including(c.Name))
}

func isCollaboration(authors []string) bool {
	return len(authors) > 0 && record.IsCollaborationName(authors[0])
}
