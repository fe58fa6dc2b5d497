package cartstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// setupTestRedis creates a miniredis server and a RedisStore pointed at it.
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "shopfront"), mr
}

func testItems() []cart.LineItem {
	return []cart.LineItem{
		{ProductID: "p1", Name: "Crochet Tote", UnitPrice: 5000, Size: "S", Color: "Cream", Quantity: 2},
		{ProductID: "p2", Name: "Bucket Hat", UnitPrice: 7000, Size: "L", Color: "Brown", Quantity: 1, CustomMessage: "Happy Birthday"},
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, testItems(), loaded)
}

func TestRedisStore_LoadMissingYieldsEmpty(t *testing.T) {
	store, _ := setupTestRedis(t)

	loaded, err := store.Load(context.Background(), "sess-unknown")

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStore_LoadCorruptYieldsEmpty(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Set("shopfront_cart:sess-1", "{not json")

	loaded, err := store.Load(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStore_KeyUsesNamespace(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))

	assert.True(t, mr.Exists("shopfront_cart:sess-1"))
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	assert.False(t, mr.Exists("shopfront_cart:sess-1"))
}

func TestRedisStore_SaveOverwritesSnapshot(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testItems()))
	require.NoError(t, store.Save(ctx, "sess-1", testItems()[:1]))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "p1", loaded[0].ProductID)
}

func TestRedisStore_ErrorWhenServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	err := store.Save(context.Background(), "sess-1", testItems())

	assert.Error(t, err)
}
