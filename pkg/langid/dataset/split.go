package dataset

import (
	"fmt"
	"math"
	mrand "math/rand/v2"
	"sort"

	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/store"
)

// Split divides rows into train and test sets, stratified by language.
// Each language contributes round(testFraction*count) rows to the test set.
// The result depends only on the rows' IDs and the seed, not on input order.
func Split(rows []store.Row, testFraction float64, seed int64) (train, test []store.Row, err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %g: %w", testFraction, internalerr.ErrInvalidInput)
	}

	byLang := make(map[string][]store.Row)
	for _, r := range rows {
		byLang[r.Language] = append(byLang[r.Language], r)
	}
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	rng := mrand.New(mrand.NewPCG(uint64(seed), 1))
	for _, lang := range langs {
		group := byLang[lang]
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })

		nTest := int(math.Round(testFraction * float64(len(group))))
		test = append(test, group[:nTest]...)
		train = append(train, group[nTest:]...)
	}
	return train, test, nil
}
