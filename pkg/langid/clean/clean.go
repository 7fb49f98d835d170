// Package clean normalizes scraped text before it is sampled.
package clean

import (
	"regexp"
	"strings"
)

var (
	markupPattern = regexp.MustCompile(`<[^<]+?>`)
	// Same set as unicode.IsSpace: \s lacks \v and U+0085, \p{Z} adds the rest.
	spacePattern = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
)

// Text removes markup, then newlines, then collapses whitespace runs.
// The order matters: tag removal can leave runs of spaces behind.
func Text(s string) string {
	s = RemoveMarkup(s)
	s = RemoveNewlines(s)
	return CollapseSpaces(s)
}

// RemoveMarkup deletes tags such as the <doc id="12" ...> wrappers written by
// Wikipedia Extractor. Removal repeats until nothing matches, so "<<a>b>"
// does not leave "<b>" behind.
func RemoveMarkup(s string) string {
	for markupPattern.MatchString(s) {
		s = markupPattern.ReplaceAllString(s, "")
	}
	return s
}

// RemoveNewlines replaces every newline with a single space.
func RemoveNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// CollapseSpaces replaces each run of whitespace with one space.
// Single spaces between words are kept; average word length is a useful signal.
func CollapseSpaces(s string) string {
	return spacePattern.ReplaceAllString(s, " ")
}
