package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS cache_entries (
	bucket     TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (bucket, key)
)`

// SQLiteStore keeps all buckets in a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, bucket Bucket, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM cache_entries WHERE bucket = ? AND key = ?`,
		string(bucket), key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}
	return data, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, bucket Bucket, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (bucket, key, data) VALUES (?, ?, ?)
		 ON CONFLICT(bucket, key) DO UPDATE SET data = excluded.data, created_at = CURRENT_TIMESTAMP`,
		string(bucket), key, data,
	)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
