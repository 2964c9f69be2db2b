// Package memory provides an in-process Store for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/gaspay-backend/internal/repositories"
)

var _ repositories.Store = (*KVStore)(nil)

// KVStore keeps values in a map; nothing survives a restart
type KVStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewKVStore creates an empty KVStore
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]map[string]string)}
}

func (s *KVStore) Get(ctx context.Context, scope, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[scope][key]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[scope] == nil {
		s.data[scope] = make(map[string]string)
	}
	s.data[scope][key] = value
	return nil
}

func (s *KVStore) Delete(ctx context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[scope], key)
	return nil
}

func (s *KVStore) Clear(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, scope)
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error { return nil }

// Keys returns the keys set for scope
func (s *KVStore) Keys(scope string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data[scope]))
	for k := range s.data[scope] {
		keys = append(keys, k)
	}
	return keys
}
