// Package storetest holds behaviour checks shared by every store.Store backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/store"
)

// Run exercises a backend. open must return a fresh, empty store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("put and read rows", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		rows := sampleRows()
		require.NoError(t, st.PutRows(ctx, rows))

		all, err := st.Rows(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "01A", all[0].ID)
		assert.Equal(t, []int{1, 2, 0, 1}, all[0].Vector)
		assert.Equal(t, "german.txt", all[0].Source)
		assert.Equal(t, 17, all[0].Offset)
		assert.True(t, rows[0].CreatedAt.Equal(all[0].CreatedAt))

		german, err := st.Rows(ctx, "german")
		require.NoError(t, err)
		require.Len(t, german, 2)
		for _, r := range german {
			assert.Equal(t, "german", r.Language)
		}
	})

	t.Run("put replaces by id", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		rows := sampleRows()
		require.NoError(t, st.PutRows(ctx, rows))
		rows[0].Sample = "ersetzt"
		rows[0].Vector = []int{9, 9, 9, 9}
		require.NoError(t, st.PutRows(ctx, rows[:1]))

		german, err := st.Rows(ctx, "german")
		require.NoError(t, err)
		require.Len(t, german, 2)
		assert.Equal(t, "ersetzt", german[0].Sample)
		assert.Equal(t, []int{9, 9, 9, 9}, german[0].Vector)
	})

	t.Run("invalid row rejected", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		rows := sampleRows()
		rows[2].Language = ""
		err := st.PutRows(ctx, rows)
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

		all, err := st.Rows(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("languages and counts", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		require.NoError(t, st.PutRows(ctx, sampleRows()))

		langs, err := st.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"french", "german"}, langs)

		counts, err := st.CountByLanguage(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"german": 2, "french": 1}, counts)
	})

	t.Run("delete language", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		require.NoError(t, st.PutRows(ctx, sampleRows()))

		n, err := st.DeleteLanguage(ctx, "german")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		langs, err := st.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"french"}, langs)
	})

	t.Run("meta", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		_, err := st.Meta(ctx, store.MetaAlphabet)
		assert.ErrorIs(t, err, internalerr.ErrNotFound)

		require.NoError(t, st.PutMeta(ctx, store.MetaAlphabet, "ab AB"))
		require.NoError(t, st.PutMeta(ctx, store.MetaAlphabet, "abc ABC"))
		v, err := st.Meta(ctx, store.MetaAlphabet)
		require.NoError(t, err)
		assert.Equal(t, "abc ABC", v)
	})
}

func sampleRows() []store.Row {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []store.Row{
		{ID: "01A", Language: "german", Source: "german.txt", Offset: 17, Sample: "der Hund", Vector: []int{1, 2, 0, 1}, CreatedAt: ts},
		{ID: "01B", Language: "german", Source: "german.txt", Offset: 230, Sample: "die Katze", Vector: []int{0, 1, 1, 1}, CreatedAt: ts},
		{ID: "01C", Language: "french", Source: "french.txt", Offset: 5, Sample: "le chien", Vector: []int{2, 0, 0, 0}, CreatedAt: ts},
	}
}
