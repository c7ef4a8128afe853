package fields

import (
	"regexp"

	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var (
	vatPattern  = regexp.MustCompile(`\b\d{11}\b`)
	vatKeywords = regexp.MustCompile(`(?i)\biva\b`)
)

// VATNumber returns the 11 digit number preceded by "iva" within window
// characters, or the first 11 digit number when none is.
func VATNumber(doc document.Document, window int) string {
	text := doc.Lower()
	var scored []candidate.Scored[string]
	for c := range candidate.Scan(text, vatPattern) {
		scored = append(scored, candidate.Scored[string]{
			Candidate: c,
			Score:     candidate.Score(text, c.Span, vatKeywords, candidate.PreOnly(window)),
			Value:     c.Value,
		})
	}
	best, ok := candidate.SelectFirst(scored)
	if !ok {
		return ""
	}
	return best.Value
}
