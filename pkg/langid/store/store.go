package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Store persists labelled feature rows.
type Store interface {
	Close() error

	// Rows
	PutRows(ctx context.Context, rows []Row) error
	Rows(ctx context.Context, language string) ([]Row, error)
	Languages(ctx context.Context) ([]string, error)
	CountByLanguage(ctx context.Context) (map[string]int, error)
	DeleteLanguage(ctx context.Context, language string) (int, error)

	// Metadata describing how the rows were built (alphabet, sample size)
	PutMeta(ctx context.Context, key, value string) error
	Meta(ctx context.Context, key string) (string, error)
}

// Metadata keys written by the dataset builder.
const (
	MetaAlphabet   = "alphabet"
	MetaSampleSize = "sample_size"
)

// Row is one labelled sample and its feature vector.
type Row struct {
	ID        string // ULID, sorts by creation time
	Language  string
	Source    string // corpus file the sample came from
	Offset    int    // requested start offset, in characters
	Sample    string
	Vector    []int
	CreatedAt time.Time
}

// Validate checks the fields every backend requires.
func (r Row) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("row id is required: %w", internalerr.ErrInvalidInput)
	}
	if r.Language == "" {
		return fmt.Errorf("row %s language is required: %w", r.ID, internalerr.ErrInvalidInput)
	}
	if len(r.Vector) == 0 {
		return fmt.Errorf("row %s vector is empty: %w", r.ID, internalerr.ErrInvalidInput)
	}
	return nil
}
