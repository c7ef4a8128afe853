package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var (
	amountPattern = regexp.MustCompile(`(?:^|\s)((?:€|euro)\s?\d+(?:,\d+|\.\d+)*[.,]?\d*|\d+(?:,\d+|\.\d+)*[.,]?\d*\s?(?:€|euro))(?:$|\s)`)
	currencyMark  = regexp.MustCompile(`€|euro`)
	amountKeyword = regexp.MustCompile(`(?i)\b(totale|finale|liquidazione|liquidato|indennizzo)\b`)
)

// AmountField is the selected monetary amount.
type AmountField struct {
	Value float64
	Text  string
	Score int
}

// Amount returns the largest euro amount among those closest to a settlement
// keyword, or the largest overall when no amount is near a keyword.
func Amount(doc document.Document, window int) (AmountField, bool) {
	text := doc.Lower()
	var scored []candidate.Scored[float64]
	for c := range candidate.ScanGroup(text, amountPattern, 1) {
		v, ok := ParseAmount(currencyMark.ReplaceAllString(c.Value, ""))
		if !ok {
			continue
		}
		scored = append(scored, candidate.Scored[float64]{
			Candidate: c,
			Score:     candidate.Score(text, c.Span, amountKeyword, candidate.Symmetric(window)),
			Value:     v,
		})
	}

	best, ok := candidate.SelectMax(scored)
	if !ok {
		return AmountField{}, false
	}
	return AmountField{Value: best.Value, Text: best.Candidate.Value, Score: best.Score}, true
}

// ParseAmount reads a number written with either "." or "," as decimal
// separator. When both appear the last one is decimal. A lone separator
// followed by exactly three digits, or repeated, groups thousands.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	decimal := -1
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimal = max(lastDot, lastComma)
	case lastDot >= 0 || lastComma >= 0:
		idx := max(lastDot, lastComma)
		sep := s[idx : idx+1]
		if strings.Count(s, sep) == 1 && len(s)-idx-1 != 3 {
			decimal = idx
		}
	}

	var b strings.Builder
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case i == decimal:
			b.WriteByte('.')
		}
	}
	if digits == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
