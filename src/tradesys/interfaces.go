package tradesys

import (
	"context"
	"errors"

	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
)

// ErrTransport marks a protocol/network level failure talking to the trade
// booking system. It is never retried here; callers own retry policy and
// surface a generic "data unavailable" state to users.
var ErrTransport = errors.New("trade booking system transport failure")

// Client is the capability boundary to the trade booking system. The live
// HTTP client and the deterministic fallback client both implement it; which
// one a deployment gets is decided once at startup by configuration, never
// by per-call environment branching.
type Client interface {
	Query(ctx context.Context, spec planner.QuerySpec) ([]models.RawActivityRecord, error)
}
