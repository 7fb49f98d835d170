package alphabet

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Alphabet holds the ordered character sets that define feature vector positions.
//
// The lowercase set drives case-insensitive counting and ends with the
// punctuation subset. The uppercase set counts capital letters only, which
// separates languages that capitalize nouns from those that don't.
// An Alphabet is immutable once built and safe to share between goroutines.
type Alphabet struct {
	lower    []rune
	upper    []rune
	lowerIdx map[rune]int
	upperIdx map[rune]int
}

// Pools describes the letters an Alphabet is built from.
type Pools struct {
	Base        string            `yaml:"base"`
	Punctuation string            `yaml:"punctuation"`
	Languages   map[string]string `yaml:"languages"`
}

// DefaultPools returns the hand-specified Latin pools for the supported
// European languages.
func DefaultPools() Pools {
	return Pools{
		Base:        "abcdefghijklmnopqrstuvwxyz",
		Punctuation: " !?¿¡",
		Languages: map[string]string{
			"german":  "äöüß",
			"italian": "àèéìíòóùú",
			"french":  "àâæçéèêêîïôœùûüÿ",
			"spanish": "áéíóúüñ",
			"czech":   "áčďéěíjňóřšťúůýž",
			"slovak":  "áäčďdzdžéíĺľňóôŕšťúýž",
		},
	}
}

// Default builds the alphabet from DefaultPools.
func Default() *Alphabet {
	a, err := New(DefaultPools())
	if err != nil {
		panic(fmt.Sprintf("alphabet: default pools rejected: %v", err))
	}
	return a
}

// New builds an Alphabet from the given pools.
//
// Letters from every pool are merged, deduplicated and sorted by code point to
// form the core. Punctuation is appended to the lowercase set only. The
// uppercase set is the full Unicode uppercase mapping of the core, so letters
// without a single-rune capital (ß) contribute their expansion (SS).
func New(p Pools) (*Alphabet, error) {
	var all strings.Builder
	all.WriteString(p.Base)
	for _, letters := range p.Languages {
		all.WriteString(letters)
	}

	core := sortedUnique([]rune(all.String()))
	if len(core) == 0 {
		return nil, fmt.Errorf("alphabet has no letters: %w", internalerr.ErrInvalidConfig)
	}

	lower := slices.Clone(core)
	for _, r := range p.Punctuation {
		if _, found := slices.BinarySearch(core, r); found {
			return nil, fmt.Errorf("punctuation %q collides with a letter: %w", r, internalerr.ErrInvalidConfig)
		}
		if slices.Contains(lower[len(core):], r) {
			continue
		}
		lower = append(lower, r)
	}

	upper := sortedUnique([]rune(cases.Upper(language.Und).String(string(core))))

	return &Alphabet{
		lower:    lower,
		upper:    upper,
		lowerIdx: indexOf(lower),
		upperIdx: indexOf(upper),
	}, nil
}

// Lower returns a copy of the lowercase set, punctuation included.
func (a *Alphabet) Lower() []rune { return slices.Clone(a.lower) }

// Upper returns a copy of the uppercase set.
func (a *Alphabet) Upper() []rune { return slices.Clone(a.upper) }

// LowerLen is the size of the lowercase set; uppercase counts start at this position.
func (a *Alphabet) LowerLen() int { return len(a.lower) }

// UpperLen is the size of the uppercase set.
func (a *Alphabet) UpperLen() int { return len(a.upper) }

// Len is the length of every feature vector built against this alphabet.
func (a *Alphabet) Len() int { return len(a.lower) + len(a.upper) }

// LowerIndex returns the vector position of r in the lowercase set.
func (a *Alphabet) LowerIndex(r rune) (int, bool) {
	i, ok := a.lowerIdx[r]
	return i, ok
}

// UpperIndex returns the position of r within the uppercase section of the vector,
// relative to the start of that section.
func (a *Alphabet) UpperIndex(r rune) (int, bool) {
	i, ok := a.upperIdx[r]
	return i, ok
}

// Display concatenates both sets for human inspection.
func (a *Alphabet) Display() string {
	return string(a.lower) + string(a.upper)
}

func sortedUnique(rs []rune) []rune {
	out := slices.Clone(rs)
	slices.Sort(out)
	return slices.Compact(out)
}

func indexOf(rs []rune) map[rune]int {
	idx := make(map[rune]int, len(rs))
	for i, r := range rs {
		idx[r] = i
	}
	return idx
}
