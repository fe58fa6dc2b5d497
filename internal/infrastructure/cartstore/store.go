// Package cartstore persists session cart snapshots to a durable key-value
// store. Every cart mutation writes the full snapshot; restore of a missing
// or corrupt record yields an empty cart rather than an error.
package cartstore

import (
	"context"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// DefaultNamespace prefixes every cart key, mirroring the storefront's
// single durable "<product>_cart" storage key.
const DefaultNamespace = "shopfront"

// Store is the durable cart snapshot store.
type Store interface {
	// Save writes the full line-item snapshot for a session.
	Save(ctx context.Context, sessionID string, items []cart.LineItem) error
	// Load reads the snapshot for a session. A missing or unreadable
	// record loads as an empty cart.
	Load(ctx context.Context, sessionID string) ([]cart.LineItem, error)
	// Delete drops the snapshot for a session.
	Delete(ctx context.Context, sessionID string) error
}
