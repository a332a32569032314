package confirmations

import (
	"context"

	"github.com/username/creditline/backend/src/models"
)

// Store is the capability boundary to the confirmation-document store.
// Implementations return every confirmation owned by the given advance
// numbers; ordering is not significant because attachment matches on the
// advance number, not arrival order.
type Store interface {
	Lookup(ctx context.Context, memberID int64, advanceNumbers []string) ([]models.ConfirmationRecord, error)
}
