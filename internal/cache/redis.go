package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache stores finished recommendation lists in Redis. The key includes the
// session because rule-mode output depends on that session's recent history.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(sessionID, productID string, mode domain.Mode, limit int) string {
	return fmt.Sprintf("rec:session:%s:product:%s:mode:%s:limit:%d", sessionID, productID, mode, limit)
}

// Get fetched cached recommendations; found=false on a miss.
func (c *Cache) Get(ctx context.Context, sessionID, productID string, mode domain.Mode, limit int) ([]domain.RecommendationItem, bool, error) {
	key := buildKey(sessionID, productID, mode, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var items []domain.RecommendationItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal %s: %w", key, err)
	}
	return items, true, nil
}

// Set stores recommendations with the configured TTL.
func (c *Cache) Set(ctx context.Context, sessionID, productID string, mode domain.Mode, limit int, items []domain.RecommendationItem) error {
	key := buildKey(sessionID, productID, mode, limit)
	val, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearSession drops all cached entries for one session.
func (c *Cache) ClearSession(ctx context.Context, sessionID string) error {
	pattern := fmt.Sprintf("rec:session:%s:*", sessionID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
