package fallback

import (
	"reflect"
	"testing"
	"time"

	"github.com/username/creditline/backend/src/models"
)

var testMonday = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

func TestGenerateDailyAdvancesWeekdayVolume(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name  string
		asOf  time.Time
		count int
	}{
		{"monday yields two records", testMonday, 2},
		{"sunday yields one record", time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC), 1},
		{"saturday yields seven records", time.Date(2024, time.March, 9, 9, 30, 0, 0, time.UTC), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := g.GenerateDailyAdvances(750, tt.asOf)
			if len(records) != tt.count {
				t.Errorf("GenerateDailyAdvances() produced %d records, want %d", len(records), tt.count)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewGenerator()

	first := g.GenerateDailyAdvances(750, testMonday)
	second := g.GenerateDailyAdvances(750, testMonday)
	if !reflect.DeepEqual(first, second) {
		t.Error("GenerateDailyAdvances() is not deterministic for identical inputs")
	}

	batchA := g.Generate(750, testMonday, 5)
	batchB := g.Generate(750, testMonday, 5)
	if !reflect.DeepEqual(batchA, batchB) {
		t.Error("Generate() is not deterministic for identical inputs")
	}
}

func TestGenerateIgnoresTimeOfDay(t *testing.T) {
	g := NewGenerator()

	morning := g.Generate(750, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC), 2)
	evening := g.Generate(750, time.Date(2024, time.March, 4, 22, 45, 0, 0, time.UTC), 2)
	if !reflect.DeepEqual(morning, evening) {
		t.Error("Generate() produced different records for different times on the same day")
	}

	for i, record := range morning {
		if record.TradeDate.Before(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("record[%d] trade date %v predates the as-of day", i, record.TradeDate)
		}
	}
}

func TestGenerateVariesByMemberAndDate(t *testing.T) {
	g := NewGenerator()

	member750 := g.Generate(750, testMonday, 2)
	member751 := g.Generate(751, testMonday, 2)
	if reflect.DeepEqual(member750, member751) {
		t.Error("Generate() produced identical records for different members")
	}

	nextMonday := g.Generate(750, testMonday.AddDate(0, 0, 7), 2)
	if reflect.DeepEqual(member750, nextMonday) {
		t.Error("Generate() produced identical records for different dates")
	}
}

func TestGenerateRecordShape(t *testing.T) {
	g := NewGenerator()

	records := g.Generate(750, testMonday, 10)
	seen := make(map[string]bool)
	for i, record := range records {
		if seen[record.AdvanceNumber] {
			t.Errorf("record[%d] advance number %s repeats within the batch", i, record.AdvanceNumber)
		}
		seen[record.AdvanceNumber] = true

		if record.Instrument != models.InstrumentAdvance && record.Instrument != models.InstrumentLetterOfCredit {
			t.Errorf("record[%d] instrument = %s, want advance or letter of credit", i, record.Instrument)
		}
		if record.InterestRate == nil {
			t.Fatalf("record[%d] has no interest rate", i)
		}
		if *record.InterestRate < 0.01 || *record.InterestRate > 0.08 {
			t.Errorf("record[%d] rate %v outside plausible bounds", i, *record.InterestRate)
		}
		if record.CurrentPar < 100000 || record.CurrentPar > 24900000 {
			t.Errorf("record[%d] par %v outside plausible bounds", i, record.CurrentPar)
		}
		if record.FundingDate == nil {
			t.Fatalf("record[%d] has no funding date", i)
		}
		if record.FundingDate.Before(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("record[%d] funding date %v predates the as-of day; generated advances must not trip the stale filter", i, record.FundingDate)
		}
	}
}

func TestGenerateConfirmations(t *testing.T) {
	g := NewGenerator()

	first := g.GenerateConfirmations(750, "901000001")
	second := g.GenerateConfirmations(750, "901000001")
	if !reflect.DeepEqual(first, second) {
		t.Error("GenerateConfirmations() is not deterministic for identical inputs")
	}
	if len(first) > 2 {
		t.Errorf("GenerateConfirmations() produced %d confirmations, want at most 2", len(first))
	}
	for i, confirmation := range first {
		if confirmation.AdvanceNumber != "901000001" {
			t.Errorf("confirmation[%d] advance number = %s, want 901000001", i, confirmation.AdvanceNumber)
		}
		if confirmation.ConfirmationNumber == "" || confirmation.DocumentRef == "" {
			t.Errorf("confirmation[%d] is missing number or document ref", i)
		}
	}

	// Some advance in a reasonable sample must own at least one confirmation.
	total := 0
	for i := 0; i < 20; i++ {
		total += len(g.GenerateConfirmations(750, string(rune('A'+i))+"01000002"))
	}
	if total == 0 {
		t.Error("GenerateConfirmations() produced zero confirmations across 20 advances")
	}
}

func TestOutstandingDealCountIsStable(t *testing.T) {
	g := NewGenerator()

	if g.OutstandingDealCount(750) != g.OutstandingDealCount(750) {
		t.Error("OutstandingDealCount() is not deterministic")
	}
	count := g.OutstandingDealCount(750)
	if count < 0 || count >= 600 {
		t.Errorf("OutstandingDealCount() = %d, want within [0, 600)", count)
	}
}
