package cache

import (
	"context"
	"time"

	"github.com/username/creditline/backend/src/models"
)

// FeedCache stores assembled activity feeds outside the aggregation engine.
// The engine itself never caches; this layer belongs to its callers.
type FeedCache interface {
	GetFeed(ctx context.Context, key string) (*models.ActivityFeed, bool)
	SetFeed(ctx context.Context, key string, feed *models.ActivityFeed, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
