package confirmations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
)

// SQLStore reads confirmation documents from the local confirmations table,
// which the booking-system sync jobs keep current.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Lookup(ctx context.Context, memberID int64, advanceNumbers []string) ([]models.ConfirmationRecord, error) {
	if len(advanceNumbers) == 0 {
		return []models.ConfirmationRecord{}, nil
	}

	placeholders := strings.Repeat("?,", len(advanceNumbers))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT advance_number, confirmation_number, confirmation_date, document_ref
		FROM confirmations
		WHERE member_id = ? AND advance_number IN (%s)
		ORDER BY advance_number, confirmation_number`, placeholders)

	args := make([]interface{}, 0, len(advanceNumbers)+1)
	args = append(args, memberID)
	for _, advanceNumber := range advanceNumbers {
		args = append(args, advanceNumber)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmations for member %d: %w", memberID, err)
	}
	defer rows.Close()

	var confirmations []models.ConfirmationRecord
	for rows.Next() {
		var record models.ConfirmationRecord
		var confirmationDate string
		var documentRef sql.NullString
		if err := rows.Scan(&record.AdvanceNumber, &record.ConfirmationNumber, &confirmationDate, &documentRef); err != nil {
			return nil, fmt.Errorf("error scanning confirmation row for member %d: %w", memberID, err)
		}
		record.ConfirmationDate, err = time.Parse(time.RFC3339, confirmationDate)
		if err != nil {
			return nil, fmt.Errorf("error parsing confirmation_date %q for member %d: %w", confirmationDate, memberID, err)
		}
		record.DocumentRef = documentRef.String
		confirmations = append(confirmations, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over confirmation rows for member %d: %w", memberID, err)
	}

	logger.L.Debug("Confirmation lookup complete", "memberID", memberID, "advanceCount", len(advanceNumbers), "confirmationCount", len(confirmations))
	if confirmations == nil {
		confirmations = []models.ConfirmationRecord{}
	}
	return confirmations, nil
}
