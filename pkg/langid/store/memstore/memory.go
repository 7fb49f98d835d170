package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	rows map[string]store.Row
	meta map[string]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		rows: make(map[string]store.Row),
		meta: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutRows inserts or replaces rows, keyed by ID. Nothing is written if any row is invalid.
func (s *Store) PutRows(ctx context.Context, rows []store.Row) error {
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.rows[r.ID] = copyRow(r)
	}
	return nil
}

// Rows returns rows for a language, or every row when language is empty, ordered by ID.
func (s *Store) Rows(ctx context.Context, language string) ([]store.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Row
	for _, r := range s.rows {
		if language == "" || r.Language == language {
			out = append(out, copyRow(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Languages returns the distinct labels, sorted.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	counts, _ := s.CountByLanguage(ctx)
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// CountByLanguage returns the number of rows per label.
func (s *Store) CountByLanguage(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.rows {
		counts[r.Language]++
	}
	return counts, nil
}

// DeleteLanguage removes every row with the given label and reports how many went.
func (s *Store) DeleteLanguage(ctx context.Context, language string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, r := range s.rows {
		if r.Language == language {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

// PutMeta sets a metadata value.
func (s *Store) PutMeta(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[key] = value
	return nil
}

// Meta returns a metadata value.
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.meta[key]
	if !ok {
		return "", fmt.Errorf("meta %q: %w", key, internalerr.ErrNotFound)
	}
	return v, nil
}

func copyRow(r store.Row) store.Row {
	r.Vector = slices.Clone(r.Vector)
	return r
}
