// Package candidate finds competing field values in text, scores them by
// keyword proximity and picks a single winner deterministically.
package candidate

import (
	"iter"
	"regexp"
)

// Span is a half-open byte range [Start, End) in the scanned text.
type Span struct {
	Start int
	End   int
}

// Candidate is one pattern match. Span always covers the whole match while
// Value may be a single capture group of it.
type Candidate struct {
	Value string
	Span
}

// Scan yields the non-overlapping matches of re in text, left to right.
func Scan(text string, re *regexp.Regexp) iter.Seq[Candidate] {
	return ScanGroup(text, re, 0)
}

// ScanGroup is Scan with Value taken from the given capture group.
// Matches where the group did not participate are skipped.
func ScanGroup(text string, re *regexp.Regexp, group int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		// Matching the whole text keeps ^ and \b anchored to the real
		// neighbours, so the match list cannot be produced lazily.
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if 2*group+1 >= len(m) || m[2*group] < 0 {
				continue
			}
			c := Candidate{
				Value: text[m[2*group]:m[2*group+1]],
				Span:  Span{Start: m[0], End: m[1]},
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ScanLines scans every line independently and yields the line index with
// each candidate. Spans are relative to the line.
func ScanLines(lines []string, re *regexp.Regexp, group int) iter.Seq2[int, Candidate] {
	return func(yield func(int, Candidate) bool) {
		for i, line := range lines {
			for c := range ScanGroup(line, re, group) {
				if !yield(i, c) {
					return
				}
			}
		}
	}
}

// First returns the first candidate of seq.
func First(seq iter.Seq[Candidate]) (Candidate, bool) {
	for c := range seq {
		return c, true
	}
	return Candidate{}, false
}

// FirstInLines returns the first candidate found scanning lines in order.
func FirstInLines(lines []string, re *regexp.Regexp, group int) (Candidate, bool) {
	for _, c := range ScanLines(lines, re, group) {
		return c, true
	}
	return Candidate{}, false
}
