package fields

import (
	"regexp"

	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var (
	emailPattern = regexp.MustCompile(`\b[\w.-]+?@\w+?\.\w+?\b`)
	// Addresses of the insurer itself are never the claimant's.
	insurerEmail = regexp.MustCompile(`(?i)realemutua|reale|sinistr|assicurazion|polizz|insurance`)
)

// Email returns the first address, in line order, that does not belong to the insurer.
func Email(doc document.Document) string {
	for _, c := range candidate.ScanLines(doc.Lines(), emailPattern, 0) {
		if !insurerEmail.MatchString(c.Value) {
			return c.Value
		}
	}
	return ""
}
