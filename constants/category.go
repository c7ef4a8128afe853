package constants

import (
	"strings"
)

// EventCategory is the cause of loss assigned to a claim document.
type EventCategory string

const (
	WaterDamage     EventCategory = "Acqua condotta"
	WeatherEvent    EventCategory = "Evento atmosferico"
	ElectricalEvent EventCategory = "Fenomeno elettrico"
	Fire            EventCategory = "Incendio"
	CivilUnrest     EventCategory = "Evento socio politico"
	Burglary        EventCategory = "Guasto ladro"
	Glass           EventCategory = "Cristallo"
)

// allCategories is the vocabulary enumeration order. Ties in keyword voting
// resolve to the earliest entry, so the order is part of the contract.
var allCategories = []EventCategory{
	WaterDamage,
	WeatherEvent,
	ElectricalEvent,
	Fire,
	CivilUnrest,
	Burglary,
	Glass,
}

// Categories returns the vocabulary in enumeration order.
func Categories() []EventCategory {
	out := make([]EventCategory, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize matches a user supplied label against the vocabulary, ignoring case.
func Canonicalize(input string) (EventCategory, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}
	return "", false
}
