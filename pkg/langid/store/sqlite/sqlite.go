package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL on %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS samples (
	id TEXT PRIMARY KEY,
	language TEXT NOT NULL,
	source TEXT,
	sample_offset INTEGER NOT NULL,
	sample TEXT NOT NULL,
	vector TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS samples_language ON samples(language);

CREATE TABLE IF NOT EXISTS meta (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutRows inserts or replaces rows in a single transaction
func (s *sqliteStore) PutRows(ctx context.Context, rows []store.Row) error {
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO samples (id, language, source, sample_offset, sample, vector, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	language=excluded.language,
	source=excluded.source,
	sample_offset=excluded.sample_offset,
	sample=excluded.sample,
	vector=excluded.vector,
	created_at=excluded.created_at;
`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		vec, err := json.Marshal(r.Vector)
		if err != nil {
			return fmt.Errorf("encode vector for %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(
			ctx,
			r.ID,
			r.Language,
			r.Source,
			r.Offset,
			r.Sample,
			string(vec),
			r.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert row %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Rows returns rows for a language, or all rows when language is empty
func (s *sqliteStore) Rows(ctx context.Context, language string) ([]store.Row, error) {
	const cols = `SELECT id, language, source, sample_offset, sample, vector, created_at FROM samples`

	var (
		rs  *sql.Rows
		err error
	)
	if language == "" {
		rs, err = s.db.QueryContext(ctx, cols+` ORDER BY id`)
	} else {
		rs, err = s.db.QueryContext(ctx, cols+` WHERE language=? ORDER BY id`, language)
	}
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []store.Row
	for rs.Next() {
		var (
			r       store.Row
			source  sql.NullString
			vec     string
			created string
		)
		if err := rs.Scan(&r.ID, &r.Language, &source, &r.Offset, &r.Sample, &vec, &created); err != nil {
			return nil, err
		}
		r.Source = source.String
		if err := json.Unmarshal([]byte(vec), &r.Vector); err != nil {
			return nil, fmt.Errorf("decode vector for %s: %w", r.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rs.Err()
}

// Languages returns distinct labels in sorted order
func (s *sqliteStore) Languages(ctx context.Context) ([]string, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT DISTINCT language FROM samples ORDER BY language`)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var langs []string
	for rs.Next() {
		var lang string
		if err := rs.Scan(&lang); err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	return langs, rs.Err()
}

// CountByLanguage returns the number of rows per label
func (s *sqliteStore) CountByLanguage(ctx context.Context) (map[string]int, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT language, COUNT(*) FROM samples GROUP BY language`)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	counts := make(map[string]int)
	for rs.Next() {
		var (
			lang string
			n    int
		)
		if err := rs.Scan(&lang, &n); err != nil {
			return nil, err
		}
		counts[lang] = n
	}
	return counts, rs.Err()
}

// DeleteLanguage removes all rows for a label
func (s *sqliteStore) DeleteLanguage(ctx context.Context, language string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM samples WHERE language=?`, language)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// PutMeta upserts a metadata value
func (s *sqliteStore) PutMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO meta (name, value) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

// Meta returns a metadata value
func (s *sqliteStore) Meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE name=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, internalerr.ErrNotFound)
	}
	return v, err
}
