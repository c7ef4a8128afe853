package candidate

import (
	"regexp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digits = regexp.MustCompile(`\b\d{3}\b`)

func TestScanYieldsMatchesInOrder(t *testing.T) {
	var got []Candidate
	for c := range Scan("a 123 b 456 c 7890", digits) {
		got = append(got, c)
	}

	require.Len(t, got, 2)
	assert.Equal(t, Candidate{Value: "123", Span: Span{Start: 2, End: 5}}, got[0])
	assert.Equal(t, "456", got[1].Value)
}

func TestScanStopsEarly(t *testing.T) {
	n := 0
	for range Scan("111 222 333", digits) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestScanGroupKeepsWholeMatchSpan(t *testing.T) {
	re := regexp.MustCompile(`(?:n\.|#)(\d+)`)
	c, ok := First(ScanGroup("polizza n.42", re, 1))

	require.True(t, ok)
	assert.Equal(t, "42", c.Value)
	assert.Equal(t, Span{Start: 8, End: 12}, c.Span)
}

func TestScanLinesIsOrderPreservingAndRepeatable(t *testing.T) {
	lines := []string{"nothing here\n", "x 999\n", "111 and 222\n"}

	collect := func() []string {
		var out []string
		for i, c := range ScanLines(lines, digits, 0) {
			out = append(out, c.Value+"@"+string(rune('0'+i)))
		}
		return out
	}
	first := collect()
	assert.Equal(t, []string{"999@1", "111@2", "222@2"}, first)
	assert.Equal(t, first, collect())

	c, ok := FirstInLines(lines, digits, 0)
	require.True(t, ok)
	assert.Equal(t, "999", c.Value)

	_, ok = FirstInLines([]string{"none"}, digits, 0)
	assert.False(t, ok)
}

func TestBeforeAfterCountRunes(t *testing.T) {
	text := "è già il 123 però"
	span := Span{Start: 0, End: 0}
	for c := range Scan(text, digits) {
		span = c.Span
	}

	assert.Equal(t, "già il ", Before(text, span.Start, 7))
	assert.Equal(t, " però", After(text, span.End, 5))
	assert.Equal(t, "è già il ", Before(text, span.Start, 100))
	assert.Equal(t, "", Before(text, span.Start, 0))
}

func TestScoreIsPure(t *testing.T) {
	text := "codice 12345678901 iva: 98765432109"
	iva := regexp.MustCompile(`(?i)\biva\b`)
	span := Span{Start: 24, End: 35}

	first := Score(text, span, iva, PreOnly(10))
	for range 5 {
		assert.Equal(t, first, Score(text, span, iva, PreOnly(10)))
	}
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, Score(text, Span{Start: 7, End: 18}, iva, PreOnly(10)))
}

func TestScoreChecksPostContextOnlyWhenEnabled(t *testing.T) {
	text := "100 € totale"
	kw := regexp.MustCompile(`(?i)\btotale\b`)
	span := Span{Start: 0, End: len("100 €")}

	assert.Equal(t, 0, Score(text, span, kw, PreOnly(30)))
	assert.Equal(t, 1, Score(text, span, kw, Symmetric(30)))
}

func TestSelectMaxScoreDominatesThenMagnitude(t *testing.T) {
	items := []Scored[float64]{
		{Candidate: Candidate{Value: "100€"}, Score: 0, Value: 100},
		{Candidate: Candidate{Value: "250€"}, Score: 1, Value: 250},
		{Candidate: Candidate{Value: "80€"}, Score: 1, Value: 80},
	}
	before := slices.Clone(items)

	got, ok := SelectMax(items)
	require.True(t, ok)
	assert.Equal(t, 250.0, got.Value)
	assert.Equal(t, before, items)
}

func TestSelectFirstPrefersScoreThenOrder(t *testing.T) {
	items := []Scored[string]{
		{Candidate: Candidate{Value: "a"}, Score: 0},
		{Candidate: Candidate{Value: "b"}, Score: 1},
		{Candidate: Candidate{Value: "c"}, Score: 1},
	}
	got, ok := SelectFirst(items)
	require.True(t, ok)
	assert.Equal(t, "b", got.Candidate.Value)

	got, ok = SelectFirst(items[:1])
	require.True(t, ok)
	assert.Equal(t, "a", got.Candidate.Value)
}

func TestSelectOnEmpty(t *testing.T) {
	_, ok := SelectFirst[string](nil)
	assert.False(t, ok)
	_, ok = SelectMax[float64](nil)
	assert.False(t, ok)
}
