package statestore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and by deployments without
// Redis. Same corruption-recovery contract as RedisStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, key string, dst interface{}) bool {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.Delete(ctx, key)
		return false
	}
	return true
}

func (s *MemoryStore) LoadRaw(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

func (s *MemoryStore) Save(_ context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// SetRaw stores raw bytes directly. Test helper for corruption and
// legacy-format scenarios.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
}
