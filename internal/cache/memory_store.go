package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps entries for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Bucket]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Bucket]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, bucket Bucket, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[bucket][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) Put(_ context.Context, bucket Bucket, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[bucket] == nil {
		s.entries[bucket] = make(map[string][]byte)
	}
	s.entries[bucket][key] = append([]byte(nil), data...)
	return nil
}

// Len returns the number of entries in a bucket.
func (s *MemoryStore) Len(bucket Bucket) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[bucket])
}

func (s *MemoryStore) Close() error { return nil }
