package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps entries as files under <dir>/<bucket>/<key><ext>.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns where an entry lives on disk.
func (s *FileStore) Path(bucket Bucket, key string) string {
	return filepath.Join(s.dir, string(bucket), key+bucket.Ext())
}

func (s *FileStore) Get(_ context.Context, bucket Bucket, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return data, true, nil
}

// Put writes through a temporary file so readers never see a partial entry.
func (s *FileStore) Put(_ context.Context, bucket Bucket, key string, data []byte) error {
	path := s.Path(bucket, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating bucket directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publishing cache entry: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
