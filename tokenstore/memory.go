// Package tokenstore persists OpenClass sessions so that a new client can reuse a
// TokenPair instead of logging in again.
package tokenstore

import (
	"context"
	"sync"

	"github.com/classowl/go-openclass/authenticationhandler"
)

var (
	_ authenticationhandler.Store = (*MemoryStore)(nil)
	_ authenticationhandler.Store = (*FileStore)(nil)
	_ authenticationhandler.Store = (*RedisStore)(nil)
)

// MemoryStore keeps the pair in process memory. Useful for sharing one session between
// clients built in the same process.
type MemoryStore struct {
	mu   sync.RWMutex
	pair authenticationhandler.TokenPair
	ok   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (authenticationhandler.TokenPair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair, s.ok, nil
}

func (s *MemoryStore) Save(_ context.Context, pair authenticationhandler.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair, s.ok = pair, true
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair, s.ok = authenticationhandler.TokenPair{}, false
	return nil
}
