package fields

import (
	"regexp"

	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

// Structural grammar of the Italian codice fiscale, omocodia letters included.
var taxCodePattern = regexp.MustCompile(`\b(?:[A-Z][AEIOU][AEIOUX]|[B-DF-HJ-NP-TV-Z]{2}[A-Z]){2}` +
	`(?:[\dLMNP-V]{2}(?:[A-EHLMPR-T](?:[04LQ][1-9MNP-V]|[15MR][\dLMNP-V]|[26NS][0-8LMNP-U])|[DHPS][37PT][0L]|[ACELMRT][37PT][01LM]|[AC-EHLMPR-T][26NS][9V])` +
	`|(?:[02468LNQSU][048LQU]|[13579MPRTV][26NS])B[26NS][9V])` +
	`(?:[A-MZ][1-9MNP-V][\dLMNP-V]{2}|[A-M][0L](?:[1-9MNP-V][\dLMNP-V]|[0L][1-9MNP-V]))[A-Z]\b`)

// TaxCode returns the first upper-case fiscal code found scanning line by line.
func TaxCode(doc document.Document) string {
	c, ok := candidate.FirstInLines(doc.Lines(), taxCodePattern, 0)
	if !ok {
		return ""
	}
	return c.Value
}
