package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/username/creditline/backend/src/models"
)

// MemoryCache is the single-process feed cache, used when no Redis address
// is configured.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) GetFeed(ctx context.Context, key string) (*models.ActivityFeed, bool) {
	value, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	feed, ok := value.(*models.ActivityFeed)
	if !ok {
		return nil, false
	}
	return feed, true
}

func (m *MemoryCache) SetFeed(ctx context.Context, key string, feed *models.ActivityFeed, ttl time.Duration) error {
	m.store.Set(key, feed, ttl)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}
