package candidate

import (
	"regexp"
	"unicode/utf8"
)

// Window is the proximity context around a candidate, in characters.
// After == 0 disables the post-context check.
type Window struct {
	Before int
	After  int
}

// Symmetric returns a window checking n characters on both sides.
func Symmetric(n int) Window { return Window{Before: n, After: n} }

// PreOnly returns a window checking only the n characters before a match.
func PreOnly(n int) Window { return Window{Before: n} }

// Before returns up to n characters of text ending at byte offset start.
func Before(text string, start, n int) string {
	prefix := text[:start]
	i := len(prefix)
	for k := 0; k < n && i > 0; k++ {
		_, size := utf8.DecodeLastRuneInString(prefix[:i])
		i -= size
	}
	return prefix[i:]
}

// After returns up to n characters of text starting at byte offset end.
func After(text string, end, n int) string {
	suffix := text[end:]
	i := 0
	for k := 0; k < n && i < len(suffix); k++ {
		_, size := utf8.DecodeRuneInString(suffix[i:])
		i += size
	}
	return suffix[:i]
}

// Score returns 1 when keywords match inside the window around span, else 0.
func Score(text string, span Span, keywords *regexp.Regexp, w Window) int {
	if w.Before > 0 && keywords.MatchString(Before(text, span.Start, w.Before)) {
		return 1
	}
	if w.After > 0 && keywords.MatchString(After(text, span.End, w.After)) {
		return 1
	}
	return 0
}
