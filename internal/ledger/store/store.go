// Package store persists ledger keys in the kv_store table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/database"
)

type Store struct {
	db       *sql.DB
	getQuery string
	setQuery string
}

// New returns a Store for db. driver selects the placeholder syntax and must
// be one of the database driver names.
func New(db *sql.DB, driver string) *Store {
	return &Store{
		db: db,
		getQuery: rebind(driver, `
			SELECT value FROM kv_store WHERE key = ?
		`),
		setQuery: rebind(driver, `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("querying key %q: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.setQuery, key, value); err != nil {
		return fmt.Errorf("upserting key %q: %w", key, err)
	}

	return nil
}

// rebind rewrites ? placeholders as $n for Postgres.
func rebind(driver, query string) string {
	if driver != database.DriverPostgres {
		return query
	}

	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++
		fmt.Fprintf(&b, "$%d", n)
	}

	return b.String()
}
