// Package postgres mirrors normalized endpoints into a Postgres table.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maksimkurb/ipnorm/src/internal/storage"
)

type Repository struct {
	pool *pgxpool.Pool
}

var _ storage.Repository = (*Repository)(nil)

// NewRepository wraps an existing pool. Call EnsureSchema before using it.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the endpoints table if it is missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := `
CREATE TABLE IF NOT EXISTS endpoints (
  ip TEXT NOT NULL,
  port INTEGER NOT NULL CHECK (port BETWEEN 1 AND 65535),
  tag TEXT NOT NULL DEFAULT '',
  first_seen TIMESTAMPTZ NOT NULL,
  last_seen TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (ip, port)
);`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create endpoints table: %w", err)
	}
	return nil
}

const upsertQuery = `
INSERT INTO endpoints (ip, port, tag, first_seen, last_seen)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (ip, port)
DO UPDATE SET
  tag = CASE WHEN EXCLUDED.tag <> '' THEN EXCLUDED.tag ELSE endpoints.tag END,
  last_seen = GREATEST(endpoints.last_seen, EXCLUDED.last_seen);
`

// SaveEndpoints upserts all records in one batch. An existing tag is kept when
// the new record has none, and last_seen never moves backwards.
func (r *Repository) SaveEndpoints(ctx context.Context, records []storage.EndpointRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(upsertQuery, rec.IP, int(rec.Port), rec.Tag, rec.LastSeen.UTC())
	}

	results := r.pool.SendBatch(ctx, batch)
	for i := range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upsert endpoint %s:%d: %w", records[i].IP, records[i].Port, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	return nil
}

// Close helps when wiring Repository to a lifecycle manager.
func (r *Repository) Close() {
	r.pool.Close()
}

// NewDB opens a pgx pool with small defaults suited to a one-shot CLI run.
func NewDB(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// Open connects, ensures the schema and returns a ready repository.
func Open(ctx context.Context, connString string) (*Repository, error) {
	pool, err := NewDB(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewRepository(pool), nil
}
