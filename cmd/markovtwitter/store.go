package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/voleinikov/markov-twitter-cli/pkg/markov"
)

// SetupCacheSchema initializes the model cache table in the provided
// database. It is idempotent and safe to call on an already-initialized
// database.
func SetupCacheSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS model_cache (
    seed_hash  TEXT PRIMARY KEY,
    seed_name  TEXT NOT NULL,
    model_json TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not create cache schema: %w", err)
	}
	return nil
}

// CacheEntry describes one cached model.
type CacheEntry struct {
	SeedName  string
	UpdatedAt time.Time
}

// ModelStore caches serialized models in SQLite, keyed by a hash of the
// seed user's name. The store never looks inside the blob; serialization
// is the model's business.
type ModelStore struct {
	db         *sql.DB
	stmtSave   *sql.Stmt
	stmtLoad   *sql.Stmt
	stmtDelete *sql.Stmt
	stmtList   *sql.Stmt
	logger     *slog.Logger
}

// NewModelStore creates a ModelStore over an initialized database. It
// pre-compiles all necessary SQL statements, returning an error if any
// preparation fails.
func NewModelStore(db *sql.DB, logger *slog.Logger) (*ModelStore, error) {
	stmtSave, err := db.Prepare(`INSERT INTO model_cache (seed_hash, seed_name, model_json, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(seed_hash) DO UPDATE SET seed_name = excluded.seed_name, model_json = excluded.model_json, updated_at = excluded.updated_at;`)
	if err != nil {
		return nil, err
	}

	stmtLoad, err := db.Prepare(`SELECT model_json FROM model_cache WHERE seed_hash = ?;`)
	if err != nil {
		return nil, err
	}

	stmtDelete, err := db.Prepare(`DELETE FROM model_cache WHERE seed_hash = ?;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT seed_name, updated_at FROM model_cache ORDER BY seed_name;`)
	if err != nil {
		return nil, err
	}

	return &ModelStore{
		db:         db,
		stmtSave:   stmtSave,
		stmtLoad:   stmtLoad,
		stmtDelete: stmtDelete,
		stmtList:   stmtList,
		logger:     logger,
	}, nil
}

// Close releases all prepared SQL statements held by the store.
func (s *ModelStore) Close() {
	_ = s.stmtSave.Close()
	_ = s.stmtLoad.Close()
	_ = s.stmtDelete.Close()
	_ = s.stmtList.Close()
}

// seedKey derives the cache key for a seed name. Lookup is
// case-insensitive on the name.
func seedKey(name string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(name))))
	return hex.EncodeToString(sum[:])
}

// Save serializes the model and upserts it under the seed's key.
func (s *ModelStore) Save(ctx context.Context, name string, m *markov.Model) error {
	var buf bytes.Buffer
	if err := m.Export(&buf); err != nil {
		return fmt.Errorf("could not export model for %q: %w", name, err)
	}
	_, err := s.stmtSave.ExecContext(ctx, seedKey(name), name, buf.String(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("could not save model for %q: %w", name, err)
	}

	s.logger.Info("model cached",
		slog.String("seed_name", name),
		slog.Int("blob_bytes", buf.Len()),
	)
	return nil
}

// Load restores the cached model for a seed name. A cache miss returns
// sql.ErrNoRows; a corrupt blob returns an error wrapping
// markov.ErrRestore, and the caller should fall back to a fresh model.
func (s *ModelStore) Load(ctx context.Context, name string, opts ...markov.ModelOption) (*markov.Model, error) {
	var blob string
	if err := s.stmtLoad.QueryRowContext(ctx, seedKey(name)).Scan(&blob); err != nil {
		return nil, err
	}
	return markov.Restore(strings.NewReader(blob), opts...)
}

// Delete drops the cached model for a seed name, if any.
func (s *ModelStore) Delete(ctx context.Context, name string) error {
	res, err := s.stmtDelete.ExecContext(ctx, seedKey(name))
	if err != nil {
		return fmt.Errorf("could not delete cached model for %q: %w", name, err)
	}
	rowsAffected, _ := res.RowsAffected()

	s.logger.Info("cached model removed",
		slog.String("seed_name", name),
		slog.Int64("rows_affected", rowsAffected),
	)
	return nil
}

// List returns all cached models ordered by seed name.
func (s *ModelStore) List(ctx context.Context) ([]CacheEntry, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var entries []CacheEntry
	for rows.Next() {
		var name string
		var updated int64
		if err = rows.Scan(&name, &updated); err != nil {
			return nil, err
		}
		entries = append(entries, CacheEntry{SeedName: name, UpdatedAt: time.Unix(updated, 0)})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
