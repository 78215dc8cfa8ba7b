package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studymate/internal/dbx"
)

// SQLStore implements Store on the kv_store table for either SQL dialect.
type SQLStore struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLStore(db dbx.DBTX, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// InTx runs fn with a store bound to a single transaction. A store that is
// already transactional runs fn directly on itself.
func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context, kv Store) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLStore(tx, s.dialect))
	})
}

func (s *SQLStore) q(query string) string {
	return dbx.Rebind(s.dialect, query)
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.q(`SELECT value FROM kv_store WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM kv_store WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
