package cartstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// brokenStore fails every operation, simulating an unreachable primary.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Save(context.Context, string, []cart.LineItem) error { return errStoreDown }
func (brokenStore) Load(context.Context, string) ([]cart.LineItem, error) {
	return nil, errStoreDown
}
func (brokenStore) Delete(context.Context, string) error { return errStoreDown }

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, testItems(), loaded)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	loaded, err = store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	items := testItems()
	require.NoError(t, store.Save(ctx, "sess-1", items))
	items[0].Quantity = 99

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded[0].Quantity)
}

func TestFailoverStore_DegradesToMemory(t *testing.T) {
	store := NewFailoverStore(brokenStore{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, testItems(), loaded)
}

func TestFailoverStore_FallbackMirrorsHealthyPrimary(t *testing.T) {
	primary := NewMemoryStore()
	store := NewFailoverStore(primary)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))

	// The fallback holds the same snapshot even while the primary is healthy.
	loaded, err := store.fallback.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, testItems(), loaded)
}

func TestFailoverStore_PrefersPrimary(t *testing.T) {
	primary := NewMemoryStore()
	store := NewFailoverStore(primary)
	ctx := context.Background()

	require.NoError(t, primary.Save(ctx, "sess-1", testItems()))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, testItems(), loaded)
}
