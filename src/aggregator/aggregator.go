package aggregator

import (
	"context"
	"sort"
	"time"

	"github.com/username/creditline/backend/src/classifier"
	"github.com/username/creditline/backend/src/confirmations"
	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/members"
	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
	"github.com/username/creditline/backend/src/tradesys"
	"github.com/username/creditline/backend/src/utils"
)

// Clock supplies "today" for status bucketing and the stale-advance filter.
// Injected so aggregation is deterministic under test.
type Clock func() time.Time

// Aggregator composes the full activity pipeline: plan queries, fetch raw
// records, drop stale amended advances, classify, attach confirmations, and
// sort. The feed it returns is owned exclusively by the caller; no state
// survives across invocations.
type Aggregator struct {
	client     tradesys.Client
	planner    *planner.Planner
	classifier *classifier.Classifier
	matcher    *confirmations.Matcher
	oracle     members.SizeOracle
	clock      Clock
}

func New(client tradesys.Client, store confirmations.Store, oracle members.SizeOracle, clock Clock) *Aggregator {
	return &Aggregator{
		client:     client,
		planner:    planner.NewPlanner(),
		classifier: classifier.NewClassifier(),
		matcher:    confirmations.NewMatcher(store),
		oracle:     oracle,
		clock:      clock,
	}
}

// Aggregate builds the member's activity feed. A transport failure on any
// planned query fails the whole aggregation; there is no partial feed.
func (a *Aggregator) Aggregate(ctx context.Context, memberID int64, assetClass models.InstrumentType) (*models.ActivityFeed, error) {
	startTime := a.clock()
	today := utils.TruncateToDay(startTime)

	isLarge, err := a.oracle.IsLarge(ctx, memberID)
	if err != nil {
		return nil, err
	}

	specs := a.planner.Plan(memberID, assetClass, isLarge)
	rawRecords, err := a.runQueries(ctx, specs)
	if err != nil {
		return nil, err
	}

	classified := make([]models.ClassifiedActivityRecord, 0, len(rawRecords))
	droppedStale := 0
	for _, raw := range rawRecords {
		if classifier.IsStaleAmendedAdvance(raw, today) {
			droppedStale++
			continue
		}
		classified = append(classified, a.classifier.Classify(raw, today))
	}
	if droppedStale > 0 {
		logger.L.Debug("Dropped stale amended advances", "memberID", memberID, "droppedCount", droppedStale)
	}

	if err := a.matcher.Attach(ctx, memberID, classified); err != nil {
		return nil, err
	}

	sortFeed(classified)

	logger.L.Info("Activity aggregation complete",
		"memberID", memberID,
		"largeMember", isLarge,
		"queryCount", len(specs),
		"recordCount", len(classified),
		"duration", time.Since(startTime))

	return &models.ActivityFeed{
		MemberID: memberID,
		AsOf:     startTime,
		Records:  classified,
	}, nil
}

// runQueries executes the planned booking-system queries concurrently. The
// queries have no data dependency on one another; results are concatenated
// in plan order once all complete, so completion order never changes the
// feed. The first error wins.
func (a *Aggregator) runQueries(ctx context.Context, specs []planner.QuerySpec) ([]models.RawActivityRecord, error) {
	if len(specs) == 1 {
		return a.client.Query(ctx, specs[0])
	}

	type queryResult struct {
		index   int
		records []models.RawActivityRecord
		err     error
	}

	results := make(chan queryResult, len(specs))
	for i, spec := range specs {
		go func(index int, spec planner.QuerySpec) {
			records, err := a.client.Query(ctx, spec)
			results <- queryResult{index: index, records: records, err: err}
		}(i, spec)
	}

	batches := make([][]models.RawActivityRecord, len(specs))
	var firstErr error
	for range specs {
		result := <-results
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		batches[result.index] = result.records
	}
	if firstErr != nil {
		return nil, firstErr
	}

	var combined []models.RawActivityRecord
	for _, batch := range batches {
		combined = append(combined, batch...)
	}
	return combined, nil
}

// sortFeed orders records by trade date descending, then advance number
// descending. The sort is stable: records equal on both keys keep their
// input order, which downstream report rendering depends on.
func sortFeed(records []models.ClassifiedActivityRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].TradeDate.Equal(records[j].TradeDate) {
			return records[i].TradeDate.After(records[j].TradeDate)
		}
		return records[i].AdvanceNumber > records[j].AdvanceNumber
	})
}
