package services

import (
	"context"
	"time"

	"github.com/username/creditline/backend/src/models"
)

// Aggregator is the slice of the activity engine this service consumes.
type Aggregator interface {
	Aggregate(ctx context.Context, memberID int64, assetClass models.InstrumentType) (*models.ActivityFeed, error)
}

// BucketSummary aggregates one status bucket of a member's feed.
type BucketSummary struct {
	Count    int     `json:"count"`
	TotalPar float64 `json:"total_par"`
}

// ActivitySummary is the per-bucket rollup the report pages render.
type ActivitySummary struct {
	MemberID int64                                 `json:"member_id"`
	AsOf     time.Time                             `json:"as_of"`
	Buckets  map[models.StatusBucket]BucketSummary `json:"buckets"`
}

// ActivityService serves member activity feeds with caching on top of the
// aggregation engine.
type ActivityService interface {
	GetMemberActivity(ctx context.Context, memberID int64, assetClass models.InstrumentType) (*models.ActivityFeed, error)
	GetMemberActivitySummary(ctx context.Context, memberID int64) (*ActivitySummary, error)
	InvalidateMemberCache(ctx context.Context, memberID int64)
}
