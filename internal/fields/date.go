package fields

import (
	"regexp"
	"strconv"
	"time"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/candidate"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

var (
	// day or year, month as number, Italian name or abbreviation, optional year or day.
	datePattern = regexp.MustCompile(`\b(0[1-9]|1[0-9]|2[0-9]|3[01]|(?:19|20)\d{2})[\s\-\\/.]{1,3}` +
		`(0[1-9]|1[012]|gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre` +
		`|gen\.*|feb\.*|mar\.*|apr\.*|mag\.*|giu\.*|lug\.*|ago\.*|set\.*|ott\.*|nov\.*|dic\.*)` +
		`[\s\-\\/.]{0,3}((?:19|20)?\d{2})?\b`)
	dateKeywords = regexp.MustCompile(`(?i)data evento|avvenut|sinistro|accadut|verificat`)
)

// yearSpan is how many years back a date may lie and still be an event date.
const yearSpan = 20

var italianMonths = map[string]time.Month{
	"gen": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"mag": time.May,
	"giu": time.June,
	"lug": time.July,
	"ago": time.August,
	"set": time.September,
	"ott": time.October,
	"nov": time.November,
	"dic": time.December,
}

// DateField is the selected date with the label it is displayed under.
type DateField struct {
	Label string
	Value string
	Date  time.Time
	Score int
}

// EventDate returns the date closest to an event keyword, or the first
// valid date when none is near a keyword. Dates that do not exist or fall
// outside the last twenty years are discarded.
func EventDate(doc document.Document, window int, now time.Time) (DateField, bool) {
	text := doc.Lower()
	var scored []candidate.Scored[time.Time]
	for _, m := range datePattern.FindAllStringSubmatchIndex(text, -1) {
		parsed, ok := parseItalianDate(group(text, m, 1), group(text, m, 2), group(text, m, 3), now)
		if !ok || parsed.Year() < now.Year()-yearSpan || parsed.Year() > now.Year() {
			continue
		}
		c := candidate.Candidate{Value: text[m[0]:m[1]], Span: candidate.Span{Start: m[0], End: m[1]}}
		scored = append(scored, candidate.Scored[time.Time]{
			Candidate: c,
			Score:     candidate.Score(text, c.Span, dateKeywords, candidate.Symmetric(window)),
			Value:     parsed,
		})
	}

	best, ok := candidate.SelectFirst(scored)
	if !ok {
		return DateField{}, false
	}
	label := constants.FieldDate
	if best.Score > 0 {
		label = constants.FieldEventDate
	}
	return DateField{
		Label: label,
		Value: best.Value.Format(constants.DateLayout),
		Date:  best.Value,
		Score: best.Score,
	}, true
}

func group(text string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

// parseItalianDate reads day-first dates and year-first ISO-like dates.
// A missing year defaults to the current one, a missing day to the first.
func parseItalianDate(first, month, last string, now time.Time) (time.Time, bool) {
	mon, ok := parseMonth(month)
	if !ok {
		return time.Time{}, false
	}

	var day, year int
	if len(first) == 4 {
		year, _ = strconv.Atoi(first)
		day = 1
		if last != "" {
			if len(last) != 2 {
				return time.Time{}, false
			}
			day, _ = strconv.Atoi(last)
		}
	} else {
		day, _ = strconv.Atoi(first)
		year = now.Year()
		if last != "" {
			y, _ := strconv.Atoi(last)
			if len(last) == 2 {
				y = expandYear(y, now)
			}
			year = y
		}
	}

	t := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != mon {
		return time.Time{}, false
	}
	return t, true
}

func parseMonth(s string) (time.Month, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	if len(s) < 3 {
		return 0, false
	}
	m, ok := italianMonths[s[:3]]
	return m, ok
}

// expandYear places a two digit year within fifty years of now.
func expandYear(y int, now time.Time) int {
	century := now.Year() / 100 * 100
	y += century
	switch {
	case y >= now.Year()+50:
		y -= 100
	case y < now.Year()-50:
		y += 100
	}
	return y
}
