package candidate

import (
	"cmp"
	"slices"
)

// Scored is a candidate with its proximity score and parsed payload.
type Scored[T any] struct {
	Candidate
	Score int
	Value T
}

// SelectFirst returns the highest scored item; among equal scores the
// earliest one wins.
func SelectFirst[T any](items []Scored[T]) (Scored[T], bool) {
	if len(items) == 0 {
		return Scored[T]{}, false
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Scored[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return sorted[0], true
}

// SelectMax orders by (score, value) descending and returns the head.
// Fully equal items keep document order.
func SelectMax[T cmp.Ordered](items []Scored[T]) (Scored[T], bool) {
	if len(items) == 0 {
		return Scored[T]{}, false
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Scored[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.Value, a.Value)
	})
	return sorted[0], true
}
