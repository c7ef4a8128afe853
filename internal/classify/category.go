// Package classify assigns an event category to claim text and filters
// image classifier labels down to the ones claim handlers care about.
package classify

import (
	"regexp"
	"slices"
	"strings"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

type vocabularyEntry struct {
	category constants.EventCategory
	pattern  *regexp.Regexp
}

// vocabulary is matched against lower-cased text, in enumeration order.
var vocabulary = []vocabularyEntry{
	{constants.WaterDamage, regexp.MustCompile(`\b(acqua|rottur.|tubazion.|idraulic.|infiltrazion.|fuoriuscit.|perdit.|idric.|occlusion.|colonna montante|scarico|ostruzion.)\b`)},
	{constants.WeatherEvent, regexp.MustCompile(`\b(vent.|pioggia|diluvio|precipitazion.|nev.|nevicat.|fulmin.|tuon.)\b`)},
	{constants.ElectricalEvent, regexp.MustCompile(`\b(elettric.|corto circuit.|circuit.|impedenz.|corrent.|cav.|tension.|alimentator.|elettricit.|contator.|blackout)\b`)},
	{constants.Fire, regexp.MustCompile(`\b(fiamm.|fuoco|incendi.?|caldo|calore|esplosion.|divampat.|bruciat.)\b`)},
	{constants.CivilUnrest, regexp.MustCompile(`\b(manifestazion.|imbrattato|vandalismo)\b`)},
	{constants.Burglary, regexp.MustCompile(`\b(ladr.|furt.|scassinat.|manomess.|serratur.|intrusion.|rubat.|rubare|sottratt.|forzat.)\b`)},
	{constants.Glass, regexp.MustCompile(`\b(cristall.)\b`)},
}

// CategoryScore is the number of vocabulary hits of one category.
type CategoryScore struct {
	Category constants.EventCategory
	Hits     int
}

// Scores counts keyword hits per category in text, ordered by hits
// descending. Equal counts keep vocabulary order.
func Scores(text string) []CategoryScore {
	lower := strings.ToLower(text)
	scores := make([]CategoryScore, 0, len(vocabulary))
	for _, entry := range vocabulary {
		scores = append(scores, CategoryScore{
			Category: entry.category,
			Hits:     len(entry.pattern.FindAllStringIndex(lower, -1)),
		})
	}
	slices.SortStableFunc(scores, func(a, b CategoryScore) int {
		return b.Hits - a.Hits
	})
	return scores
}

// Categorize returns the category with most keyword hits in the document.
// A document without any hit falls back to the first vocabulary entry.
func Categorize(doc document.Document) constants.EventCategory {
	return Scores(doc.Lower())[0].Category
}
