package members

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/creditline/backend/src/fallback"
	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
)

// SizeOracle decides whether a member's outstanding advance volume is large
// enough to require per-status query partitioning.
type SizeOracle interface {
	IsLarge(ctx context.Context, memberID int64) (bool, error)
}

// SQLSizeOracle counts a member's outstanding advance-type deals against the
// partitioning threshold.
type SQLSizeOracle struct {
	db *sql.DB
}

func NewSQLSizeOracle(db *sql.DB) *SQLSizeOracle { return &SQLSizeOracle{db: db} }

func (o *SQLSizeOracle) IsLarge(ctx context.Context, memberID int64) (bool, error) {
	placeholders := strings.Repeat("?,", len(planner.ActiveStatuses))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT COUNT(*) FROM credit_deals
		WHERE member_id = ? AND deal_type = ? AND status IN (%s)`, placeholders)

	args := make([]interface{}, 0, len(planner.ActiveStatuses)+2)
	args = append(args, memberID, string(models.InstrumentAdvance))
	for _, status := range planner.ActiveStatuses {
		args = append(args, status)
	}

	var count int
	if err := o.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error counting outstanding deals for member %d: %w", memberID, err)
	}
	logger.L.Debug("Member size check", "memberID", memberID, "outstandingDeals", count, "threshold", planner.LargeMemberThreshold)
	return count > planner.LargeMemberThreshold, nil
}

// FallbackSizeOracle synthesizes a stable deal count when no database backs
// the lookup, so large-member partitioning stays reachable in fallback
// environments.
type FallbackSizeOracle struct {
	generator *fallback.Generator
}

func NewFallbackSizeOracle(generator *fallback.Generator) *FallbackSizeOracle {
	return &FallbackSizeOracle{generator: generator}
}

func (o *FallbackSizeOracle) IsLarge(ctx context.Context, memberID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return o.generator.OutstandingDealCount(memberID) > planner.LargeMemberThreshold, nil
}
