package dataset

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/store"
)

// Summary describes the rows collected for one language.
type Summary struct {
	Language      string
	Rows          int
	MeanSampleLen float64
	CapitalShare  float64 // capital letters per counted letter
	TopChars      []rune  // most frequent lowercase-set characters, space excluded
}

// Summarize aggregates rows per language, sorted by language. Vectors whose
// length does not match the alphabet are left out of the character totals.
func Summarize(rows []store.Row, alpha *alphabet.Alphabet, top int) []Summary {
	type acc struct {
		rows    int
		chars   int
		lower   []int
		capital int
	}

	lowerLen := alpha.LowerLen()
	accs := make(map[string]*acc)
	for _, r := range rows {
		a, ok := accs[r.Language]
		if !ok {
			a = &acc{lower: make([]int, lowerLen)}
			accs[r.Language] = a
		}
		a.rows++
		a.chars += utf8.RuneCountInString(r.Sample)

		if len(r.Vector) != alpha.Len() {
			continue
		}
		for i := 0; i < lowerLen; i++ {
			a.lower[i] += r.Vector[i]
		}
		for _, c := range r.Vector[lowerLen:] {
			a.capital += c
		}
	}

	set := alpha.Lower()
	out := make([]Summary, 0, len(accs))
	for lang, a := range accs {
		s := Summary{
			Language:      lang,
			Rows:          a.rows,
			MeanSampleLen: float64(a.chars) / float64(a.rows),
		}

		letters := 0
		order := make([]int, 0, lowerLen)
		for i, c := range a.lower {
			if set[i] == ' ' || c == 0 {
				continue
			}
			letters += c
			order = append(order, i)
		}
		if letters > 0 {
			s.CapitalShare = float64(a.capital) / float64(letters)
		}
		sort.SliceStable(order, func(i, j int) bool { return a.lower[order[i]] > a.lower[order[j]] })
		if top > 0 && len(order) > top {
			order = order[:top]
		}
		for _, i := range order {
			s.TopChars = append(s.TopChars, set[i])
		}

		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Language < out[j].Language })
	return out
}
