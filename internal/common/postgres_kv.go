package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrStoreNotMigrated = errors.New("kv_store table does not exist, run the migrations first")

// PostgresKV persists values in the kv_store table created by the migrations.
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// undefinedTable reports whether err is postgres error 42P01.
func undefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}

	return false
}

func (p *PostgresKV) wrap(op, key string, err error) error {
	if undefinedTable(err) {
		return ErrStoreNotMigrated
	}

	return fmt.Errorf("%s %q: %w", op, key, err)
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return "", false, nil
		default:
			return "", false, p.wrap("reading", key, err)
		}
	}

	return value, true, nil
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return p.wrap("writing", key, err)
	}

	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return p.wrap("deleting", key, err)
	}

	return nil
}
