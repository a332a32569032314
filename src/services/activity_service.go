package services

import (
	"context"
	"fmt"
	"time"

	"github.com/username/creditline/backend/src/cache"
	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
)

const ckMemberActivityFeed = "activity_feed_member_%d_%s"

// assetClassCacheKeys lists the asset-class variants a member's feed can be
// cached under, so invalidation can clear them all.
var assetClassCacheKeys = []models.InstrumentType{
	"",
	models.InstrumentAdvance,
	models.InstrumentLetterOfCredit,
	models.InstrumentOther,
}

type activityServiceImpl struct {
	aggregator Aggregator
	feedCache  cache.FeedCache
	cacheTTL   time.Duration
}

func NewActivityService(aggregator Aggregator, feedCache cache.FeedCache, cacheTTL time.Duration) ActivityService {
	return &activityServiceImpl{
		aggregator: aggregator,
		feedCache:  feedCache,
		cacheTTL:   cacheTTL,
	}
}

func feedCacheKey(memberID int64, assetClass models.InstrumentType) string {
	if assetClass == "" {
		return fmt.Sprintf(ckMemberActivityFeed, memberID, "ALL")
	}
	return fmt.Sprintf(ckMemberActivityFeed, memberID, assetClass)
}

func (s *activityServiceImpl) GetMemberActivity(ctx context.Context, memberID int64, assetClass models.InstrumentType) (*models.ActivityFeed, error) {
	cacheKey := feedCacheKey(memberID, assetClass)
	if feed, found := s.feedCache.GetFeed(ctx, cacheKey); found {
		logger.L.Debug("Cache hit for member activity feed", "memberID", memberID, "assetClass", assetClass)
		return feed, nil
	}

	logger.L.Info("Cache miss for member activity feed, aggregating", "memberID", memberID, "assetClass", assetClass)
	feed, err := s.aggregator.Aggregate(ctx, memberID, assetClass)
	if err != nil {
		return nil, err
	}

	if err := s.feedCache.SetFeed(ctx, cacheKey, feed, s.cacheTTL); err != nil {
		// A cache write failure never fails the request.
		logger.L.Warn("Failed to cache member activity feed", "memberID", memberID, "error", err)
	}
	return feed, nil
}

func (s *activityServiceImpl) GetMemberActivitySummary(ctx context.Context, memberID int64) (*ActivitySummary, error) {
	feed, err := s.GetMemberActivity(ctx, memberID, "")
	if err != nil {
		return nil, err
	}

	buckets := make(map[models.StatusBucket]BucketSummary)
	for _, record := range feed.Records {
		summary := buckets[record.Bucket]
		summary.Count++
		summary.TotalPar += record.CurrentPar
		buckets[record.Bucket] = summary
	}

	return &ActivitySummary{
		MemberID: feed.MemberID,
		AsOf:     feed.AsOf,
		Buckets:  buckets,
	}, nil
}

func (s *activityServiceImpl) InvalidateMemberCache(ctx context.Context, memberID int64) {
	for _, assetClass := range assetClassCacheKeys {
		if err := s.feedCache.Delete(ctx, feedCacheKey(memberID, assetClass)); err != nil {
			logger.L.Warn("Failed to invalidate feed cache entry", "memberID", memberID, "assetClass", assetClass, "error", err)
		}
	}
	logger.L.Info("Invalidated activity feed caches for member", "memberID", memberID)
}
