package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is the KV implementation backed by the app_state table: one row
// per key, value stored as jsonb. All application values are JSON documents,
// so jsonb gets us server-side validity checking for free.
type Postgres struct {
	db db
}

// NewPostgres constructs a Postgres store.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgres(db db) *Postgres {
	return &Postgres{db: db}
}

// Get returns the value stored under key, or ErrNoValue if the row is absent.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM app_state WHERE key = @key`

	var value []byte
	err := p.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoValue
		}
		return nil, fmt.Errorf("store.Postgres.Get: %w", err)
	}
	return value, nil
}

// Set upserts the value for key.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()`

	_, err := p.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("store.Postgres.Set: %w", err)
	}
	return nil
}

// Delete removes the row for key. Deleting an absent key is a no-op.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM app_state WHERE key = @key`

	if _, err := p.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("store.Postgres.Delete: %w", err)
	}
	return nil
}

// compile-time check: Postgres must satisfy KV.
var _ KV = (*Postgres)(nil)
