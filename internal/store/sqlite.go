package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite is a KV backed by the kv table of a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database. The schema must already exist
// (see db.EnsureSchema).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Get returns the value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// PutIfAbsent stores value under key only when the key is unused and returns
// whichever value ends up stored. INSERT OR IGNORE followed by a re-read
// avoids a race between two processes initializing the same key.
func (s *SQLite) PutIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO kv (key, value) VALUES (?, ?)`,
		key, value,
	)
	if err != nil {
		return nil, fmt.Errorf("storing %s: %w", key, err)
	}
	return s.Get(ctx, key)
}
