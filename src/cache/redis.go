package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/username/creditline/backend/src/models"
)

// RedisCache shares the feed cache across instances. Feeds are stored as
// JSON under their member-scoped keys.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) GetFeed(ctx context.Context, key string) (*models.ActivityFeed, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var feed models.ActivityFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, false
	}
	return &feed, true
}

func (r *RedisCache) SetFeed(ctx context.Context, key string, feed *models.ActivityFeed, ttl time.Duration) error {
	data, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("error marshaling feed for cache key %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("error writing feed to Redis key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting Redis key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
