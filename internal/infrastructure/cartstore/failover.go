package cartstore

import (
	"context"
	"log"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// FailoverStore wraps a durable primary with an in-memory fallback. When the
// primary is unreachable the session degrades to memory-only carts instead of
// failing; storage trouble is never fatal to a browsing session.
type FailoverStore struct {
	primary  Store
	fallback *MemoryStore
}

func NewFailoverStore(primary Store) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: NewMemoryStore(),
	}
}

func (s *FailoverStore) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	if err := s.primary.Save(ctx, sessionID, items); err != nil {
		log.Printf("[CartStore] Primary save failed for session %s, using memory fallback: %v", sessionID, err)
		return s.fallback.Save(ctx, sessionID, items)
	}
	// Keep the fallback current so a later primary outage does not lose
	// the session's cart.
	_ = s.fallback.Save(ctx, sessionID, items)
	return nil
}

func (s *FailoverStore) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	items, err := s.primary.Load(ctx, sessionID)
	if err != nil {
		log.Printf("[CartStore] Primary load failed for session %s, using memory fallback: %v", sessionID, err)
		return s.fallback.Load(ctx, sessionID)
	}
	return items, nil
}

func (s *FailoverStore) Delete(ctx context.Context, sessionID string) error {
	_ = s.fallback.Delete(ctx, sessionID)
	if err := s.primary.Delete(ctx, sessionID); err != nil {
		log.Printf("[CartStore] Primary delete failed for session %s: %v", sessionID, err)
		return err
	}
	return nil
}
