package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS cache_entries (
	bucket     TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (bucket, key)
)`

// PostgresStore shares cache entries between hosts through a Postgres table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore ensures the cache table exists. The pool stays owned by the caller.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("creating cache table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, bucket Bucket, key string) ([]byte, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM cache_entries WHERE bucket = $1 AND key = $2`,
		string(bucket), key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}
	return data, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, bucket Bucket, key string, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cache_entries (bucket, key, data) VALUES ($1, $2, $3)
		 ON CONFLICT (bucket, key) DO UPDATE SET data = EXCLUDED.data, created_at = now()`,
		string(bucket), key, data,
	)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
