package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/langid/pkg/langid/store"
	"github.com/cognicore/langid/pkg/langid/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		return st
	})
}

// TestSQLiteReopen checks that rows and meta survive closing the database
func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "dataset.db")

	st, err := OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, st.PutRows(ctx, []store.Row{
		{ID: "01X", Language: "slovak", Sample: "ďakujem pekne", Vector: []int{3, 1}},
	}))
	require.NoError(t, st.PutMeta(ctx, store.MetaSampleSize, "140"))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	defer st.Close()

	rows, err := st.Rows(ctx, "slovak")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ďakujem pekne", rows[0].Sample)
	assert.Equal(t, []int{3, 1}, rows[0].Vector)

	size, err := st.Meta(ctx, store.MetaSampleSize)
	require.NoError(t, err)
	assert.Equal(t, "140", size)
}
