package dataset

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/clean"
	"github.com/cognicore/langid/pkg/langid/config"
	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/sampling"
	"github.com/cognicore/langid/pkg/langid/store"
)

// Doc is a labelled raw text the builder samples from.
type Doc struct {
	Language string
	Source   string
	Text     string
}

// Stats reports what a Build call produced and skipped.
type Stats struct {
	Docs           int
	Rows           int
	SkippedDocs    int // too short to hold a single sample window
	SkippedSamples int // windows that ran off the text or held no whole word
}

// Builder draws sample windows from documents and vectorizes them.
// A Builder is not safe for concurrent use.
type Builder struct {
	alpha         *alphabet.Alphabet
	sampleSize    int
	samplesPerDoc int
	rng           *mrand.Rand
	entropy       *ulid.MonotonicEntropy
	logger        *slog.Logger
	now           func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides the row timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a builder. Offsets are drawn from a generator seeded with
// s.Seed, so the same corpus and config give the same samples.
func NewBuilder(alpha *alphabet.Alphabet, s config.Sampling, opts ...Option) (*Builder, error) {
	if alpha == nil {
		return nil, fmt.Errorf("alphabet is required: %w", internalerr.ErrInvalidInput)
	}
	if s.SampleSize <= 0 || s.SamplesPerDoc <= 0 {
		return nil, fmt.Errorf("sample size %d, samples per doc %d: %w", s.SampleSize, s.SamplesPerDoc, internalerr.ErrInvalidConfig)
	}

	b := &Builder{
		alpha:         alpha,
		sampleSize:    s.SampleSize,
		samplesPerDoc: s.SamplesPerDoc,
		rng:           mrand.New(mrand.NewPCG(uint64(s.Seed), 0)),
		entropy:       ulid.Monotonic(rand.Reader, 0),
		logger:        slog.Default().With("component", "dataset-builder"),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build cleans each document and draws samples from it.
//
// Offsets are drawn uniformly from [0, n-2*size) where n is the cleaned
// length in characters, which leaves a full window of slack for the seek to
// the next word. Documents shorter than 2*size+1 characters are skipped.
func (b *Builder) Build(ctx context.Context, docs []Doc) ([]store.Row, Stats, error) {
	var (
		rows  []store.Row
		stats Stats
	)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return rows, stats, err
		}
		stats.Docs++

		text := clean.Text(doc.Text)
		n := utf8.RuneCountInString(text)
		limit := n - 2*b.sampleSize
		if limit <= 0 {
			b.logger.Warn("document too short to sample",
				"language", doc.Language, "source", doc.Source,
				"chars", n, "sample_size", b.sampleSize)
			stats.SkippedDocs++
			continue
		}

		for i := 0; i < b.samplesPerDoc; i++ {
			offset := b.rng.IntN(limit)
			sample, err := sampling.Text(text, offset, b.sampleSize)
			if err != nil {
				if errors.Is(err, internalerr.ErrOutOfBounds) || errors.Is(err, internalerr.ErrNoWholeWord) {
					b.logger.Debug("skipping sample", "source", doc.Source, "offset", offset, "error", err)
					stats.SkippedSamples++
					continue
				}
				return rows, stats, fmt.Errorf("sample %s at %d: %w", doc.Source, offset, err)
			}

			now := b.now()
			rows = append(rows, store.Row{
				ID:        ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
				Language:  doc.Language,
				Source:    doc.Source,
				Offset:    offset,
				Sample:    sample,
				Vector:    sampling.Count(sample, b.alpha),
				CreatedAt: now,
			})
			stats.Rows++
		}

		b.logger.Info("sampled document",
			"language", doc.Language, "source", doc.Source, "chars", n)
	}

	return rows, stats, nil
}
