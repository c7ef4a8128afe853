package fields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var (
	// 2021/05/1234567, optionally glued to an "n", "n.", "n°" or "#" marker.
	policyStrict = regexp.MustCompile(`(?:\b|n|n\.|n°|#)(\d{4}[\\/-]\d{2}[\\/-]\d{7})\b`)
	// Loose numbers only count when "polizza" shortly precedes them.
	policyLoose = regexp.MustCompile(`(?:\b|n|n\.|n°|#)(\d{7,}|\d{2}[\\/-]\d{5,})\b`)
)

const policyKeyword = "polizza"

// PolicyNumber returns the first strictly formatted policy number found line
// by line. Without one it falls back to the first loose number with
// "polizza" in the preceding window characters.
func PolicyNumber(doc document.Document, window int) string {
	lower := make([]string, doc.Len())
	for i := range lower {
		lower[i] = strings.ToLower(doc.Line(i))
	}
	if c, ok := candidate.FirstInLines(lower, policyStrict, 1); ok {
		return c.Value
	}

	text := doc.Lower()
	for c := range candidate.ScanGroup(text, policyLoose, 1) {
		if strings.Contains(candidate.Before(text, c.Start, window), policyKeyword) {
			return c.Value
		}
	}
	return ""
}
