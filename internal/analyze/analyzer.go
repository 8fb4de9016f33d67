// Package analyze computes document statistics from extracted text.
package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stats holds the four counts computed for a document.
type Stats struct {
	WordCount       int
	CharacterCount  int
	WhitespaceCount int
	LineCount       int
}

// Analyze computes word, character, whitespace, and line counts for text.
// Any string is valid input; the empty string yields all zeros.
// Characters are counted as Unicode code points, not bytes. Words are maximal
// runs of non-whitespace (unicode.IsSpace boundaries, so NBSP splits words).
func Analyze(text string) Stats {
	return Stats{
		WordCount:       len(strings.Fields(text)),
		CharacterCount:  utf8.RuneCountInString(text),
		WhitespaceCount: countWhitespace(text),
		LineCount:       countLines(text),
	}
}

// countWhitespace counts individual whitespace characters, not runs.
func countWhitespace(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// countLines counts lines delimited by \n, \r\n, or \r (\r\n counts once).
// Empty text has zero lines, and a trailing terminator does not open an
// extra empty line. Text that is entirely whitespace reports only the number
// of terminators present, so "   " is zero lines, not one.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	breaks := 0
	prevCR := false
	lastIsBreak := false
	for _, r := range text {
		switch r {
		case '\r':
			breaks++
			prevCR = true
			lastIsBreak = true
			continue
		case '\n':
			if !prevCR {
				breaks++
			}
			lastIsBreak = true
		default:
			lastIsBreak = false
		}
		prevCR = false
	}
	if strings.TrimSpace(text) == "" {
		return breaks
	}
	if lastIsBreak {
		return breaks
	}
	return breaks + 1
}
