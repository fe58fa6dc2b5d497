package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

// Session carts are durable state, not a cache, but they cannot live forever:
// an abandoned cart expires after this TTL.
const defaultTTL = 30 * 24 * time.Hour

type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{
		client:    client,
		namespace: namespace,
		ttl:       defaultTTL,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return fmt.Sprintf("%s_cart:%s", s.namespace, sessionID)
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt snapshot must not take the session down; start over.
		log.Printf("[CartStore] Corrupt cart snapshot for session %s, starting empty: %v", sessionID, err)
		return nil, nil
	}
	return items, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
