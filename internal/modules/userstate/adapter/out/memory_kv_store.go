package out

import (
	"context"
	"sync"

	userstateout "niamverse/internal/modules/userstate/port/out"
)

// MemoryKVStore keeps values for the lifetime of the process. It backs the
// user state when the sqlite file cannot be opened.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: map[string]string{}}
}

var _ userstateout.KVStore = (*MemoryKVStore)(nil)

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
