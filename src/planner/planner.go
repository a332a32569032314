package planner

import "github.com/username/creditline/backend/src/models"

// LargeMemberThreshold is the outstanding advance-deal count above which a
// member's booking-system queries are partitioned per status.
const LargeMemberThreshold = 300

// ActiveStatuses is the fixed, ordered set of lifecycle statuses considered
// currently open for an advance. Per-status query plans follow this order.
var ActiveStatuses = []string{
	models.StatusVerified,
	models.StatusOpsReview,
	models.StatusOpsVerified,
	models.StatusSecReviewed,
	models.StatusSecReview,
	models.StatusCollateralAuth,
	models.StatusAuthTerm,
	models.StatusPendTerm,
}

// QuerySpec describes one call against the trade booking system.
type QuerySpec struct {
	MemberID   int64
	AssetClass models.InstrumentType // Empty means all instruments
	Statuses   []string
}

type Planner struct{}

func NewPlanner() *Planner { return &Planner{} }

// Plan decides how to partition the booking-system query. Small members get
// a single query covering every active status. Large members get one query
// per status: the booking system silently truncates oversized result sets,
// and a member above the threshold can overflow a combined query.
// Always returns at least one spec.
func (p *Planner) Plan(memberID int64, assetClass models.InstrumentType, isLargeMember bool) []QuerySpec {
	if !isLargeMember {
		return []QuerySpec{{
			MemberID:   memberID,
			AssetClass: assetClass,
			Statuses:   append([]string(nil), ActiveStatuses...),
		}}
	}

	specs := make([]QuerySpec, 0, len(ActiveStatuses))
	for _, status := range ActiveStatuses {
		specs = append(specs, QuerySpec{
			MemberID:   memberID,
			AssetClass: assetClass,
			Statuses:   []string{status},
		})
	}
	return specs
}
