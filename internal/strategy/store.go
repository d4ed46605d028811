// Package strategy looks up learned strategies by encoded information-set
// key and turns them into a Player.
package strategy

import (
	"context"
	"sync"
)

// Strategy is a stored decision for one information set: either a single
// action index into the legal actions, or a distribution over them.
type Strategy struct {
	Index int       `json:"index,omitempty"`
	Probs []float64 `json:"probs,omitempty"`
}

// IsDistribution is true when the strategy carries probabilities.
func (s Strategy) IsDistribution() bool { return len(s.Probs) > 0 }

// Store returns the strategy for a key. A missing key is found == false
// with a nil error: an unknown state, not a failure.
type Store interface {
	Lookup(ctx context.Context, key string) (s Strategy, found bool, err error)
}

// Writer stores strategies.
type Writer interface {
	Put(ctx context.Context, key string, s Strategy) error
}

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Strategy
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Strategy)}
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, key string) (Strategy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[key]
	return st, ok, nil
}

// Put implements Writer.
func (s *MemoryStore) Put(_ context.Context, key string, st Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = st
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
