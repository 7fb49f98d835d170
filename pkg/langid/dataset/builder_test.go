package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/config"
	"github.com/cognicore/langid/pkg/langid/internalerr"
)

func testDocs() []Doc {
	german := strings.Repeat("Der schnelle braune Fuchs springt über den faulen Hund. ", 20)
	french := "<doc id=\"3\" title=\"Renard\">\n" +
		strings.Repeat("Le renard brun rapide saute par-dessus le chien paresseux.\n", 20) +
		"</doc>"
	return []Doc{
		{Language: "german", Source: "german.txt", Text: german},
		{Language: "french", Source: "french.xml", Text: french},
		{Language: "czech", Source: "czech.txt", Text: "Příliš krátké"},
	}
}

func testSampling() config.Sampling {
	return config.Sampling{SampleSize: 30, SamplesPerDoc: 20, Seed: 1}
}

func TestBuild(t *testing.T) {
	alpha := alphabet.Default()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b, err := NewBuilder(alpha, testSampling(), WithLogger(logger))
	require.NoError(t, err)

	rows, stats, err := b.Build(context.Background(), testDocs())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Docs)
	assert.Equal(t, 1, stats.SkippedDocs)
	assert.Equal(t, 40, stats.Rows+stats.SkippedSamples)
	assert.Equal(t, stats.Rows, len(rows))
	assert.NotEmpty(t, rows)
	assert.Contains(t, logs.String(), "document too short to sample")

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
		assert.Len(t, r.Vector, alpha.Len())
		assert.NotEmpty(t, r.Sample)
		assert.LessOrEqual(t, utf8.RuneCountInString(r.Sample), 30)
		assert.NotContains(t, r.Sample, "<")
		assert.NotContains(t, r.Sample, "\n")
		assert.Contains(t, []string{"german", "french"}, r.Language)
	}
	assert.True(t, sort.StringsAreSorted(ids), "ULIDs should be monotonic")
}

func TestBuildDeterministic(t *testing.T) {
	alpha := alphabet.Default()
	clock := WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })

	b1, err := NewBuilder(alpha, testSampling(), clock)
	require.NoError(t, err)
	b2, err := NewBuilder(alpha, testSampling(), clock)
	require.NoError(t, err)

	rows1, _, err := b1.Build(context.Background(), testDocs())
	require.NoError(t, err)
	rows2, _, err := b2.Build(context.Background(), testDocs())
	require.NoError(t, err)

	require.Len(t, rows2, len(rows1))
	for i := range rows1 {
		assert.Equal(t, rows1[i].Offset, rows2[i].Offset)
		assert.Equal(t, rows1[i].Sample, rows2[i].Sample)
		assert.Equal(t, rows1[i].Vector, rows2[i].Vector)
	}
}

func TestBuildCanceled(t *testing.T) {
	b, err := NewBuilder(alphabet.Default(), testSampling())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = b.Build(ctx, testDocs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(nil, testSampling())
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = NewBuilder(alphabet.Default(), config.Sampling{SampleSize: 0, SamplesPerDoc: 1})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
