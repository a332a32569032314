package fallback

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
	"github.com/username/creditline/backend/src/utils"
)

// Generator synthesizes plausible booking-system records for environments
// where the live system is not configured. Every stream is seeded from the
// stable business keys of the request, so repeated calls with the same
// inputs are byte-identical. That stability is what snapshot tests and demo
// environments rely on; this is not a cryptographic use of randomness.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// confirmationEpoch anchors synthesized confirmation dates so they stay
// stable across calls regardless of wall-clock time.
var confirmationEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var productCodes = []string{"FRC", "VRC", "ARC", "OCN"}

var subProductCodes = []string{"", "Open VRC", "Fixed Rate Credit", "Amortizing", "Callable"}

func seedFor(parts ...string) int64 {
	h := fnv.New64a()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{'|'})
	}
	return int64(h.Sum64())
}

// Generate produces count raw activity records for the member as of the
// given date. The stream for each record is seeded from
// (memberID, asOfDate, index) only.
func (g *Generator) Generate(memberID int64, asOf time.Time, count int) []models.RawActivityRecord {
	day := asOf.Format("2006-01-02")
	records := make([]models.RawActivityRecord, 0, count)
	for i := 0; i < count; i++ {
		rng := rand.New(rand.NewSource(seedFor(strconv.FormatInt(memberID, 10), day, strconv.Itoa(i))))
		records = append(records, g.record(asOf, i, rng))
	}
	return records
}

// GenerateDailyAdvances produces the member's advances for the day. Volume
// is coupled to the weekday: weekday index (Sunday=0) plus one, so a Monday
// yields two records.
func (g *Generator) GenerateDailyAdvances(memberID int64, asOf time.Time) []models.RawActivityRecord {
	return g.Generate(memberID, asOf, int(asOf.Weekday())+1)
}

func (g *Generator) record(asOf time.Time, index int, rng *rand.Rand) models.RawActivityRecord {
	// The index is embedded in the advance number so identifiers stay
	// unique within a batch.
	advanceNumber := fmt.Sprintf("9%02d%06d", index, rng.Intn(1000000))

	instrument := models.InstrumentAdvance
	if rng.Intn(10) == 0 {
		instrument = models.InstrumentLetterOfCredit
	}

	status := planner.ActiveStatuses[rng.Intn(len(planner.ActiveStatuses))]
	// The trade timestamp is anchored to the as-of day, not the wall clock,
	// so two calls on the same day yield byte-identical records.
	tradeDate := utils.TruncateToDay(asOf).Add(time.Duration(rng.Intn(6*60)) * time.Minute)
	fundingDate := utils.TruncateToDay(asOf)
	rate := utils.RoundFloat(0.01+rng.Float64()*0.07, 5)
	currentPar := float64(rng.Intn(249)+1) * 100000

	record := models.RawActivityRecord{
		Instrument:     instrument,
		Status:         status,
		TradeDate:      tradeDate,
		FundingDate:    &fundingDate,
		AdvanceNumber:  advanceNumber,
		InterestRate:   &rate,
		CurrentPar:     currentPar,
		ProductCode:    productCodes[rng.Intn(len(productCodes))],
		SubProductCode: subProductCodes[rng.Intn(len(subProductCodes))],
	}

	// Roughly one in five instruments is open-ended and carries no maturity.
	if rng.Intn(5) != 0 {
		maturity := utils.TruncateToDay(asOf).AddDate(0, 0, 30+rng.Intn(365*5))
		record.MaturityDate = &maturity
	}

	return record
}

// GenerateConfirmations synthesizes zero to two confirmation documents for
// an advance, seeded from (memberID, advanceNumber) only.
func (g *Generator) GenerateConfirmations(memberID int64, advanceNumber string) []models.ConfirmationRecord {
	rng := rand.New(rand.NewSource(seedFor(strconv.FormatInt(memberID, 10), advanceNumber)))
	count := rng.Intn(3)
	confirmations := make([]models.ConfirmationRecord, 0, count)
	for i := 0; i < count; i++ {
		confirmations = append(confirmations, models.ConfirmationRecord{
			ConfirmationNumber: fmt.Sprintf("%s-C%02d", advanceNumber, i+1),
			ConfirmationDate:   confirmationEpoch.AddDate(0, 0, rng.Intn(365)),
			AdvanceNumber:      advanceNumber,
			DocumentRef:        fmt.Sprintf("docstore://confirmations/%016x", rng.Uint64()),
		})
	}
	return confirmations
}

// OutstandingDealCount synthesizes a stable outstanding advance-deal count
// for a member, used by the fallback member-size oracle.
func (g *Generator) OutstandingDealCount(memberID int64) int {
	rng := rand.New(rand.NewSource(seedFor("deal-count", strconv.FormatInt(memberID, 10))))
	return rng.Intn(600)
}
