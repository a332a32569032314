package models

import "time"

// ConfirmationRecord is a confirmation document evidencing execution of an
// advance. Records are read-only to the aggregation engine: they are created
// by the confirmation store (or synthesized by the fallback generator) and
// never mutated or deleted here.
type ConfirmationRecord struct {
	ConfirmationNumber string    `json:"confirmation_number"` // Unique within the owning advance
	ConfirmationDate   time.Time `json:"confirmation_date"`
	AdvanceNumber      string    `json:"advance_number"`
	DocumentRef        string    `json:"document_ref"` // Opaque document locator
}
