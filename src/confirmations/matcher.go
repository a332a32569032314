package confirmations

import (
	"context"

	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
)

// Matcher attaches confirmation documents to their owning classified records.
type Matcher struct {
	store Store
}

func NewMatcher(store Store) *Matcher { return &Matcher{store: store} }

// Attach looks up confirmations for the distinct advance numbers in the feed
// and attaches each to its owning record by exact advance-number match.
// Records with no confirmation keep an empty (never nil) list. A
// confirmation referencing an advance absent from the feed is dropped.
func (m *Matcher) Attach(ctx context.Context, memberID int64, records []models.ClassifiedActivityRecord) error {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(records))
	advanceNumbers := make([]string, 0, len(records))
	for _, record := range records {
		if !seen[record.AdvanceNumber] {
			seen[record.AdvanceNumber] = true
			advanceNumbers = append(advanceNumbers, record.AdvanceNumber)
		}
	}

	confirmations, err := m.store.Lookup(ctx, memberID, advanceNumbers)
	if err != nil {
		return err
	}

	byAdvance := make(map[string][]models.ConfirmationRecord, len(advanceNumbers))
	dropped := 0
	for _, confirmation := range confirmations {
		if !seen[confirmation.AdvanceNumber] {
			dropped++
			continue
		}
		byAdvance[confirmation.AdvanceNumber] = append(byAdvance[confirmation.AdvanceNumber], confirmation)
	}
	if dropped > 0 {
		logger.L.Debug("Dropped confirmations referencing advances outside the feed", "memberID", memberID, "droppedCount", dropped)
	}

	for i := range records {
		matched := byAdvance[records[i].AdvanceNumber]
		if matched == nil {
			matched = []models.ConfirmationRecord{}
		}
		records[i].Confirmations = matched
	}
	return nil
}
