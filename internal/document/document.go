// Package document holds the line-oriented text model produced by OCR.
package document

import (
	"strings"
)

// Document is an immutable sequence of text lines. Line terminators are kept
// as read so per-line scans see exactly what the OCR produced.
type Document struct {
	lines  []string
	joined string
	lower  string
}

// FromLines builds a document from already split lines. CRLF terminators
// become "\n", as in SplitLines.
func FromLines(lines []string) Document {
	cp := make([]string, len(lines))
	for i, l := range lines {
		cp[i] = strings.ReplaceAll(l, "\r\n", "\n")
	}
	joined := strings.ReplaceAll(strings.Join(cp, " "), "\n", "")
	return Document{
		lines:  cp,
		joined: joined,
		lower:  strings.ToLower(joined),
	}
}

// FromText splits raw text on line terminators, keeping them.
func FromText(text string) Document {
	return FromLines(SplitLines(text))
}

// SplitLines splits text after every "\n". A trailing line without a
// terminator is kept; an empty input yields no lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Lines returns a copy of the document lines.
func (d Document) Lines() []string {
	cp := make([]string, len(d.lines))
	copy(cp, d.lines)
	return cp
}

// Len returns the number of lines.
func (d Document) Len() int { return len(d.lines) }

// Line returns the i-th line, terminator included.
func (d Document) Line(i int) string { return d.lines[i] }

// Joined returns the lines joined by single spaces with newlines removed.
func (d Document) Joined() string { return d.joined }

// Lower returns the lower-cased joined text.
func (d Document) Lower() string { return d.lower }

// Text returns the document as it was read.
func (d Document) Text() string { return strings.Join(d.lines, "") }

// IsEmpty reports whether the document carries no visible text.
func (d Document) IsEmpty() bool { return strings.TrimSpace(d.joined) == "" }
