package tradesys

import (
	"context"
	"time"

	"github.com/username/creditline/backend/src/fallback"
	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
)

// FallbackClient serves deterministic synthesized activity when the booking
// system is not configured for the environment. It honors the query plan's
// status and asset-class scoping so small- and large-member plans see the
// same records exactly once.
type FallbackClient struct {
	generator *fallback.Generator
	clock     func() time.Time
}

func NewFallbackClient(generator *fallback.Generator, clock func() time.Time) *FallbackClient {
	return &FallbackClient{generator: generator, clock: clock}
}

func (c *FallbackClient) Query(ctx context.Context, spec planner.QuerySpec) ([]models.RawActivityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(spec.Statuses))
	for _, status := range spec.Statuses {
		wanted[status] = true
	}

	generated := c.generator.GenerateDailyAdvances(spec.MemberID, c.clock())
	records := make([]models.RawActivityRecord, 0, len(generated))
	for _, record := range generated {
		if !wanted[record.Status] {
			continue
		}
		if spec.AssetClass != "" && record.Instrument != spec.AssetClass {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
