package store

import (
	"context"
	"sync"

	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore returns a process-local key-value store. Nothing survives a restart.
func NewMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[namespace][key]
	if !ok {
		return nil, errs.NewNotFoundError("preference not found")
	}
	return append([]byte(nil), v...), nil
}

func (s *memoryStore) Set(_ context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.data[namespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
	return nil
}
