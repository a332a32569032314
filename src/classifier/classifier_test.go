package classifier

import (
	"testing"
	"time"

	"github.com/username/creditline/backend/src/models"
)

var testToday = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC) // a Monday

func floatPtr(v float64) *float64    { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestClassifyStatusBuckets(t *testing.T) {
	yesterday := testToday.AddDate(0, 0, -1)

	tests := []struct {
		name       string
		status     string
		tradeDate  time.Time
		wantBucket models.StatusBucket
	}{
		{"verified traded before today is outstanding", models.StatusVerified, yesterday, models.BucketOutstanding},
		{"verified traded today is processing", models.StatusVerified, testToday, models.BucketProcessing},
		{"pend term traded before today is outstanding", models.StatusPendTerm, yesterday, models.BucketOutstanding},
		{"collateral auth traded today is processing", models.StatusCollateralAuth, testToday, models.BucketProcessing},
		{"terminated", models.StatusTerminated, yesterday, models.BucketTerminated},
		{"exercised", models.StatusExercised, yesterday, models.BucketExercised},
		{"matured is other", models.StatusMatured, yesterday, models.BucketOther},
		{"unknown status is other", "SOME_NEW_CODE", yesterday, models.BucketOther},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawActivityRecord{
				Instrument:    models.InstrumentAdvance,
				Status:        tt.status,
				TradeDate:     tt.tradeDate,
				AdvanceNumber: "900000001",
			}
			got := c.Classify(raw, testToday)
			if got.Bucket != tt.wantBucket {
				t.Errorf("Classify() bucket = %s, want %s", got.Bucket, tt.wantBucket)
			}
		})
	}
}

func TestClassifyProductDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawActivityRecord
		want string
	}{
		{
			name: "terminated advance uses full/partial indicator",
			raw: models.RawActivityRecord{
				Instrument:             models.InstrumentAdvance,
				Status:                 models.StatusTerminated,
				TradeDate:              testToday.AddDate(0, 0, -10),
				TerminationPar:         floatPtr(50000),
				TerminationFullPartial: "Full",
			},
			want: "Full",
		},
		{
			name: "terminated letter of credit uses full/partial indicator",
			raw: models.RawActivityRecord{
				Instrument:             models.InstrumentLetterOfCredit,
				Status:                 models.StatusTerminated,
				TradeDate:              testToday.AddDate(0, 0, -10),
				TerminationFullPartial: "Partial",
			},
			want: "Partial",
		},
		{
			name: "exercised advance uses full/partial indicator",
			raw: models.RawActivityRecord{
				Instrument:             models.InstrumentAdvance,
				Status:                 models.StatusExercised,
				TradeDate:              testToday.AddDate(0, 0, -10),
				TerminationFullPartial: "Full",
			},
			want: "Full",
		},
		{
			name: "terminated other instrument is literal TERMINATION",
			raw: models.RawActivityRecord{
				Instrument: models.InstrumentOther,
				Status:     models.StatusTerminated,
				TradeDate:  testToday.AddDate(0, 0, -10),
			},
			want: "TERMINATION",
		},
		{
			name: "amended not prepaid falls back to instrument type",
			raw: models.RawActivityRecord{
				Instrument:             models.InstrumentAdvance,
				Status:                 models.StatusVerified,
				TradeDate:              testToday,
				SubProductCode:         "Open VRC",
				TerminationPar:         floatPtr(25000),
				TerminationFullPartial: "Partial",
			},
			want: "ADVANCE",
		},
		{
			name: "active advance concatenates sub-product",
			raw: models.RawActivityRecord{
				Instrument:     models.InstrumentAdvance,
				Status:         models.StatusVerified,
				TradeDate:      testToday,
				SubProductCode: "Open VRC",
			},
			want: "ADVANCE Open VRC",
		},
		{
			name: "active advance without sub-product is instrument alone",
			raw: models.RawActivityRecord{
				Instrument: models.InstrumentAdvance,
				Status:     models.StatusOpsReview,
				TradeDate:  testToday,
			},
			want: "ADVANCE",
		},
		{
			name: "matured letter of credit is instrument type",
			raw: models.RawActivityRecord{
				Instrument: models.InstrumentLetterOfCredit,
				Status:     models.StatusMatured,
				TradeDate:  testToday.AddDate(0, 0, -100),
			},
			want: "LETTER_OF_CREDIT",
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.raw, testToday)
			if got.ProductDescription != tt.want {
				t.Errorf("Classify() description = %q, want %q", got.ProductDescription, tt.want)
			}
		})
	}
}

func TestClassifySuppressesExercisedRate(t *testing.T) {
	c := NewClassifier()
	raw := models.RawActivityRecord{
		Instrument:    models.InstrumentLetterOfCredit,
		Status:        models.StatusExercised,
		TradeDate:     testToday.AddDate(0, 0, -5),
		InterestRate:  floatPtr(0.035),
		AdvanceNumber: "900000002",
	}

	got := c.Classify(raw, testToday)
	if got.Bucket != models.BucketExercised {
		t.Fatalf("Classify() bucket = %s, want %s", got.Bucket, models.BucketExercised)
	}
	if got.InterestRatePct != nil {
		t.Errorf("Classify() interest rate = %v, want nil for exercised instrument", *got.InterestRatePct)
	}
}

func TestClassifyKeepsRateForNonExercised(t *testing.T) {
	c := NewClassifier()
	raw := models.RawActivityRecord{
		Instrument:   models.InstrumentAdvance,
		Status:       models.StatusVerified,
		TradeDate:    testToday.AddDate(0, 0, -5),
		InterestRate: floatPtr(0.035),
	}

	got := c.Classify(raw, testToday)
	if got.InterestRatePct == nil {
		t.Fatal("Classify() interest rate = nil, want display percent")
	}
	if *got.InterestRatePct != 3.5 {
		t.Errorf("Classify() interest rate = %v, want 3.5", *got.InterestRatePct)
	}
}

func TestClassifyMaturityDisplay(t *testing.T) {
	c := NewClassifier()

	openEnded := c.Classify(models.RawActivityRecord{
		Instrument: models.InstrumentAdvance,
		Status:     models.StatusVerified,
		TradeDate:  testToday,
	}, testToday)
	if openEnded.MaturityDisplay != OpenEndedMaturityDisplay {
		t.Errorf("MaturityDisplay = %q, want %q for missing maturity", openEnded.MaturityDisplay, OpenEndedMaturityDisplay)
	}

	maturity := time.Date(2027, time.June, 15, 0, 0, 0, 0, time.UTC)
	dated := c.Classify(models.RawActivityRecord{
		Instrument:   models.InstrumentAdvance,
		Status:       models.StatusVerified,
		TradeDate:    testToday,
		MaturityDate: timePtr(maturity),
	}, testToday)
	if dated.MaturityDisplay != "15-06-2027" {
		t.Errorf("MaturityDisplay = %q, want %q", dated.MaturityDisplay, "15-06-2027")
	}
}

func TestClassifyInitializesEmptyConfirmations(t *testing.T) {
	c := NewClassifier()
	got := c.Classify(models.RawActivityRecord{
		Instrument: models.InstrumentAdvance,
		Status:     models.StatusVerified,
		TradeDate:  testToday,
	}, testToday)
	if got.Confirmations == nil {
		t.Error("Classify() confirmations = nil, want empty slice")
	}
	if len(got.Confirmations) != 0 {
		t.Errorf("Classify() confirmations length = %d, want 0", len(got.Confirmations))
	}
}

func TestIsStaleAmendedAdvance(t *testing.T) {
	yesterday := testToday.AddDate(0, 0, -1)

	tests := []struct {
		name string
		raw  models.RawActivityRecord
		want bool
	}{
		{
			name: "old amended advance is stale",
			raw: models.RawActivityRecord{
				Instrument:  models.InstrumentAdvance,
				Status:      models.StatusVerified,
				FundingDate: timePtr(yesterday),
			},
			want: true,
		},
		{
			name: "exercised advance is never stale",
			raw: models.RawActivityRecord{
				Instrument:  models.InstrumentAdvance,
				Status:      models.StatusExercised,
				FundingDate: timePtr(yesterday),
			},
			want: false,
		},
		{
			name: "termination par present means prepaid not amended",
			raw: models.RawActivityRecord{
				Instrument:     models.InstrumentAdvance,
				Status:         models.StatusTerminated,
				FundingDate:    timePtr(yesterday),
				TerminationPar: floatPtr(50000),
			},
			want: false,
		},
		{
			name: "funded today is not stale",
			raw: models.RawActivityRecord{
				Instrument:  models.InstrumentAdvance,
				Status:      models.StatusVerified,
				FundingDate: timePtr(testToday),
			},
			want: false,
		},
		{
			name: "missing funding date is not stale",
			raw: models.RawActivityRecord{
				Instrument: models.InstrumentAdvance,
				Status:     models.StatusVerified,
			},
			want: false,
		},
		{
			name: "letter of credit is not subject to the filter",
			raw: models.RawActivityRecord{
				Instrument:  models.InstrumentLetterOfCredit,
				Status:      models.StatusVerified,
				FundingDate: timePtr(yesterday),
			},
			want: false,
		},
		{
			name: "status outside the credit lifecycle set is not filtered",
			raw: models.RawActivityRecord{
				Instrument:  models.InstrumentAdvance,
				Status:      "SOME_NEW_CODE",
				FundingDate: timePtr(yesterday),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStaleAmendedAdvance(tt.raw, testToday); got != tt.want {
				t.Errorf("IsStaleAmendedAdvance() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestToDisplayPercent(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{0.035, 3.5},
		{0.05125, 5.125},
		{0, 0},
		{0.0412345, 4.123},
	}
	for _, tt := range tests {
		if got := ToDisplayPercent(tt.rate); got != tt.want {
			t.Errorf("ToDisplayPercent(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}

	if ToDisplayPercentPtr(nil) != nil {
		t.Error("ToDisplayPercentPtr(nil) should stay nil")
	}
}
