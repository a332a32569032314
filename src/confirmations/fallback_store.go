package confirmations

import (
	"context"

	"github.com/username/creditline/backend/src/fallback"
	"github.com/username/creditline/backend/src/models"
)

// FallbackStore synthesizes confirmation documents deterministically when no
// live confirmation store is configured.
type FallbackStore struct {
	generator *fallback.Generator
}

func NewFallbackStore(generator *fallback.Generator) *FallbackStore {
	return &FallbackStore{generator: generator}
}

func (s *FallbackStore) Lookup(ctx context.Context, memberID int64, advanceNumbers []string) ([]models.ConfirmationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	confirmations := make([]models.ConfirmationRecord, 0, len(advanceNumbers))
	for _, advanceNumber := range advanceNumbers {
		confirmations = append(confirmations, s.generator.GenerateConfirmations(memberID, advanceNumber)...)
	}
	return confirmations, nil
}
