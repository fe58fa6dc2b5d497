package cartstore

import (
	"context"
	"sync"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// MemoryStore keeps cart snapshots in process memory. It backs tests and the
// degraded mode used when the durable store is unreachable.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]cart.LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]cart.LineItem)}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]cart.LineItem, len(items))
	copy(snapshot, items)
	s.carts[sessionID] = snapshot
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	items := make([]cart.LineItem, len(stored))
	copy(items, stored)
	return items, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
