package sampling

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Vector is a feature row: lowercase-set counts followed by uppercase-set counts.
type Vector []int

// Split returns the case-folded counts and the capital-letter counts.
func (v Vector) Split(a *alphabet.Alphabet) (all, big []int) {
	n := a.LowerLen()
	return v[:n], v[n:]
}

// Sum totals every count in the vector.
func (v Vector) Sum() int {
	total := 0
	for _, c := range v {
		total += c
	}
	return total
}

// CountChars counts occurrences of each rune of set in text, in set order.
func CountChars(text string, set []rune) []int {
	idx := make(map[rune]int, len(set))
	for i, r := range set {
		idx[r] = i
	}
	counts := make([]int, len(set))
	for _, r := range text {
		if i, ok := idx[r]; ok {
			counts[i]++
		}
	}
	return counts
}

// InputRow samples content at start and counts its characters against a.
//
// Letters are counted twice: once case-folded against the lowercase set and
// once in original case against the uppercase set, because the frequency of
// capitals (German nouns, for instance) is a signal of its own.
func InputRow(content string, start, size int, a *alphabet.Alphabet) (Vector, error) {
	if a == nil {
		return nil, fmt.Errorf("nil alphabet: %w", internalerr.ErrInvalidInput)
	}

	sample, err := Text(content, start, size)
	if err != nil {
		return nil, err
	}
	return Count(sample, a), nil
}

// Count builds the feature vector for an already extracted sample.
func Count(sample string, a *alphabet.Alphabet) Vector {
	vec := make(Vector, a.Len())

	// Casers carry state; a fresh one per call keeps Count safe for concurrent use.
	lowered := cases.Lower(language.Und).String(sample)
	for _, r := range lowered {
		if i, ok := a.LowerIndex(r); ok {
			vec[i]++
		}
	}

	offset := a.LowerLen()
	for _, r := range sample {
		if i, ok := a.UpperIndex(r); ok {
			vec[offset+i]++
		}
	}
	return vec
}
