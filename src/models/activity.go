package models

import "time"

// InstrumentType is the booking-system instrument classification.
type InstrumentType string

const (
	InstrumentAdvance        InstrumentType = "ADVANCE"
	InstrumentLetterOfCredit InstrumentType = "LETTER_OF_CREDIT"
	InstrumentOther          InstrumentType = "OTHER"
)

// Lifecycle status codes as reported by the trade booking system.
const (
	StatusVerified       = "VERIFIED"
	StatusOpsReview      = "OPS_REVIEW"
	StatusOpsVerified    = "OPS_VERIFIED"
	StatusSecReviewed    = "SEC_REVIEWED"
	StatusSecReview      = "SEC_REVIEW"
	StatusCollateralAuth = "COLLATERAL_AUTH"
	StatusAuthTerm       = "AUTH_TERM"
	StatusPendTerm       = "PEND_TERM"
	StatusTerminated     = "TERMINATED"
	StatusExercised      = "EXERCISED"
	StatusMatured        = "MATURED"
)

// StatusBucket is the normalized, display-level status classification.
type StatusBucket string

const (
	BucketOutstanding StatusBucket = "Outstanding"
	BucketProcessing  StatusBucket = "Processing"
	BucketTerminated  StatusBucket = "Terminated"
	BucketExercised   StatusBucket = "Exercised"
	BucketOther       StatusBucket = "Other"
)

// RawActivityRecord represents a single activity record as received from the
// trade booking system (or the fallback generator). Optional fields are
// pointers; a nil MaturityDate means the instrument is open-ended, not that
// data is missing.
type RawActivityRecord struct {
	Instrument InstrumentType `json:"instrument"`
	// Status is the free-form booking-system code, e.g. VERIFIED.
	Status       string     `json:"status"`
	TradeDate    time.Time  `json:"trade_date"`
	FundingDate  *time.Time `json:"funding_date,omitempty"`
	MaturityDate *time.Time `json:"maturity_date,omitempty"`
	// AdvanceNumber is unique within one query batch.
	AdvanceNumber string `json:"advance_number"`
	// InterestRate is a fraction, e.g. 0.035.
	InterestRate   *float64 `json:"interest_rate,omitempty"`
	CurrentPar     float64  `json:"current_par"`
	ProductCode    string   `json:"product_code"`
	SubProductCode string   `json:"sub_product_code,omitempty"`
	TerminationPar *float64 `json:"termination_par,omitempty"`
	TerminationFee *float64 `json:"termination_fee,omitempty"`
	// TerminationFullPartial carries the booking system's indicator value,
	// e.g. "Full" or "Partial".
	TerminationFullPartial string     `json:"termination_full_partial,omitempty"`
	TerminationDate        *time.Time `json:"termination_date,omitempty"`
}

// ClassifiedActivityRecord is a display-ready activity record after
// classification and enrichment.
type ClassifiedActivityRecord struct {
	AdvanceNumber      string         `json:"advance_number"`
	Instrument         InstrumentType `json:"instrument"`
	Status             string         `json:"status"`
	Bucket             StatusBucket   `json:"bucket"`
	ProductDescription string         `json:"product_description"`
	TradeDate          time.Time      `json:"trade_date"`
	FundingDate        *time.Time     `json:"funding_date,omitempty"`
	MaturityDate       *time.Time     `json:"maturity_date,omitempty"`
	// MaturityDisplay renders "Open-Ended" when MaturityDate is nil.
	MaturityDisplay string `json:"maturity_display"`
	// InterestRatePct is the display percent; always nil for Exercised.
	InterestRatePct *float64   `json:"interest_rate_pct,omitempty"`
	CurrentPar      float64    `json:"current_par"`
	TerminationPar  *float64   `json:"termination_par,omitempty"`
	TerminationFee  *float64   `json:"termination_fee,omitempty"`
	TerminationDate *time.Time `json:"termination_date,omitempty"`

	// Confirmations matched by advance number. Empty slice (never nil) when
	// no confirmation document exists for the advance.
	Confirmations []ConfirmationRecord `json:"confirmations"`
}

// ActivityFeed is the ordered result of one aggregation run. Records are
// sorted by trade date descending, then advance number descending.
type ActivityFeed struct {
	MemberID int64                      `json:"member_id"`
	AsOf     time.Time                  `json:"as_of"`
	Records  []ClassifiedActivityRecord `json:"records"`
}
