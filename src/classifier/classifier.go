package classifier

import (
	"time"

	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/utils"
)

// todaysAdvanceStatuses are the lifecycle statuses an advance moves through
// on its trade day before settling as outstanding.
var todaysAdvanceStatuses = map[string]bool{
	models.StatusVerified:       true,
	models.StatusOpsReview:      true,
	models.StatusOpsVerified:    true,
	models.StatusSecReviewed:    true,
	models.StatusSecReview:      true,
	models.StatusCollateralAuth: true,
	models.StatusAuthTerm:       true,
	models.StatusPendTerm:       true,
}

// creditLifecycleStatuses is the broader set: today's advance statuses plus
// the terminal ones. The stale-amended-advance filter only applies inside
// this set.
var creditLifecycleStatuses = map[string]bool{
	models.StatusVerified:       true,
	models.StatusOpsReview:      true,
	models.StatusOpsVerified:    true,
	models.StatusSecReviewed:    true,
	models.StatusSecReview:      true,
	models.StatusCollateralAuth: true,
	models.StatusAuthTerm:       true,
	models.StatusPendTerm:       true,
	models.StatusTerminated:     true,
	models.StatusExercised:      true,
	models.StatusMatured:        true,
}

// OpenEndedMaturityDisplay renders a missing maturity date. An instrument
// with no maturity is open-ended, never missing data.
const OpenEndedMaturityDisplay = "Open-Ended"

type Classifier struct{}

func NewClassifier() *Classifier { return &Classifier{} }

// Classify maps one raw booking-system record to its display-ready form.
// Classification is total: any status the rules don't name falls through to
// the Other bucket with the instrument type as description.
func (c *Classifier) Classify(raw models.RawActivityRecord, today time.Time) models.ClassifiedActivityRecord {
	today = utils.TruncateToDay(today)
	bucket := bucketFor(raw, today)

	classified := models.ClassifiedActivityRecord{
		AdvanceNumber:      raw.AdvanceNumber,
		Instrument:         raw.Instrument,
		Status:             raw.Status,
		Bucket:             bucket,
		ProductDescription: describeProduct(raw, bucket),
		TradeDate:          raw.TradeDate,
		FundingDate:        raw.FundingDate,
		MaturityDate:       raw.MaturityDate,
		MaturityDisplay:    OpenEndedMaturityDisplay,
		CurrentPar:         raw.CurrentPar,
		TerminationPar:     raw.TerminationPar,
		TerminationFee:     raw.TerminationFee,
		TerminationDate:    raw.TerminationDate,
		Confirmations:      []models.ConfirmationRecord{},
	}

	if raw.MaturityDate != nil {
		classified.MaturityDisplay = raw.MaturityDate.Format(utils.DefaultDateFormat)
	}

	// Exercised instruments carry no meaningful ongoing rate; suppress it
	// regardless of what the booking system sent.
	if bucket != models.BucketExercised {
		classified.InterestRatePct = ToDisplayPercentPtr(raw.InterestRate)
	}

	return classified
}

func bucketFor(raw models.RawActivityRecord, today time.Time) models.StatusBucket {
	if todaysAdvanceStatuses[raw.Status] {
		if utils.TruncateToDay(raw.TradeDate).Before(today) {
			return models.BucketOutstanding
		}
		return models.BucketProcessing
	}
	switch raw.Status {
	case models.StatusTerminated:
		return models.BucketTerminated
	case models.StatusExercised:
		return models.BucketExercised
	case models.StatusMatured:
		return models.BucketOther
	}
	return models.BucketOther
}

// describeProduct derives the displayable product description.
// Rules apply in order, first match wins.
func describeProduct(raw models.RawActivityRecord, bucket models.StatusBucket) string {
	isAdvance := raw.Instrument == models.InstrumentAdvance
	isLetterOfCredit := raw.Instrument == models.InstrumentLetterOfCredit

	switch {
	case (isAdvance && bucket == models.BucketExercised) ||
		((isAdvance || isLetterOfCredit) && bucket == models.BucketTerminated):
		return raw.TerminationFullPartial

	case raw.Status == models.StatusTerminated:
		// Terminated status on an instrument that is neither an advance nor
		// a letter of credit.
		return "TERMINATION"

	case raw.TerminationPar != nil && raw.TerminationFullPartial != "" && bucket != models.BucketTerminated:
		// Amended, not prepaid: termination fields are populated but the
		// current status is not terminal.
		return string(raw.Instrument)

	case isAdvance && bucket != models.BucketExercised && bucket != models.BucketTerminated:
		if raw.SubProductCode != "" {
			return string(raw.Instrument) + " " + raw.SubProductCode
		}
		return string(raw.Instrument)
	}
	return string(raw.Instrument)
}

// IsStaleAmendedAdvance reports whether a record is an old advance that was
// amended rather than prepaid: its funding date predates today but it carries
// no termination par. Such records must not surface as newly active, so the
// aggregator drops them before classification. Both the today's and historic
// credit activity views share this single filter.
func IsStaleAmendedAdvance(raw models.RawActivityRecord, today time.Time) bool {
	if !creditLifecycleStatuses[raw.Status] {
		return false
	}
	return raw.Instrument == models.InstrumentAdvance &&
		raw.Status != models.StatusExercised &&
		raw.TerminationPar == nil &&
		raw.FundingDate != nil &&
		utils.TruncateToDay(*raw.FundingDate).Before(utils.TruncateToDay(today))
}
