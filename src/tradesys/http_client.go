package tradesys

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/planner"
)

// tradeQueryResponse mirrors the booking system's trade search payload.
type tradeQueryResponse struct {
	Trades []tradeRecord `json:"trades"`
}

type tradeRecord struct {
	Instrument             string   `json:"instrument"`
	Status                 string   `json:"status"`
	TradeDate              string   `json:"trade_date"`
	FundingDate            string   `json:"funding_date"`
	MaturityDate           string   `json:"maturity_date"`
	AdvanceNumber          string   `json:"advance_number"`
	InterestRate           *float64 `json:"interest_rate"`
	CurrentPar             float64  `json:"current_par"`
	ProductCode            string   `json:"product_code"`
	SubProductCode         string   `json:"sub_product_code"`
	TerminationPar         *float64 `json:"termination_par"`
	TerminationFee         *float64 `json:"termination_fee"`
	TerminationFullPartial string   `json:"termination_full_partial"`
	TerminationDate        string   `json:"termination_date"`
}

// HTTPClient talks to the live trade booking system over its JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: http.Client{
			Timeout: timeout,
		},
	}
}

// Query runs one planned trade search. Any network, protocol, or decode
// failure is wrapped in ErrTransport and returned as-is; the booking system
// is never retried from here.
func (c *HTTPClient) Query(ctx context.Context, spec planner.QuerySpec) ([]models.RawActivityRecord, error) {
	params := url.Values{}
	params.Set("customer_id", strconv.FormatInt(spec.MemberID, 10))
	params.Set("status", strings.Join(spec.Statuses, ","))
	if spec.AssetClass != "" {
		params.Set("asset_class", string(spec.AssetClass))
	}
	reqURL := c.baseURL + "/api/v1/trades?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building trade query request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: querying trades for member %d: %v", ErrTransport, spec.MemberID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: trade query for member %d returned status %d", ErrTransport, spec.MemberID, resp.StatusCode)
	}

	var payload tradeQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding trade query response for member %d: %v", ErrTransport, spec.MemberID, err)
	}

	records := make([]models.RawActivityRecord, 0, len(payload.Trades))
	for _, trade := range payload.Trades {
		record, err := trade.toRawActivityRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed trade record %s: %v", ErrTransport, trade.AdvanceNumber, err)
		}
		records = append(records, record)
	}
	logger.L.Debug("Trade query complete", "memberID", spec.MemberID, "statuses", spec.Statuses, "recordCount", len(records))
	return records, nil
}

func (t tradeRecord) toRawActivityRecord() (models.RawActivityRecord, error) {
	tradeDate, err := time.Parse(time.RFC3339, t.TradeDate)
	if err != nil {
		return models.RawActivityRecord{}, fmt.Errorf("parsing trade_date %q: %w", t.TradeDate, err)
	}

	record := models.RawActivityRecord{
		Instrument:             instrumentFromWire(t.Instrument),
		Status:                 t.Status,
		TradeDate:              tradeDate,
		AdvanceNumber:          t.AdvanceNumber,
		InterestRate:           t.InterestRate,
		CurrentPar:             t.CurrentPar,
		ProductCode:            t.ProductCode,
		SubProductCode:         t.SubProductCode,
		TerminationPar:         t.TerminationPar,
		TerminationFee:         t.TerminationFee,
		TerminationFullPartial: t.TerminationFullPartial,
	}

	if record.FundingDate, err = parseOptionalDate(t.FundingDate); err != nil {
		return models.RawActivityRecord{}, fmt.Errorf("parsing funding_date %q: %w", t.FundingDate, err)
	}
	if record.MaturityDate, err = parseOptionalDate(t.MaturityDate); err != nil {
		return models.RawActivityRecord{}, fmt.Errorf("parsing maturity_date %q: %w", t.MaturityDate, err)
	}
	if record.TerminationDate, err = parseOptionalDate(t.TerminationDate); err != nil {
		return models.RawActivityRecord{}, fmt.Errorf("parsing termination_date %q: %w", t.TerminationDate, err)
	}
	return record, nil
}

// parseOptionalDate handles the booking system's date fields, which are
// RFC3339 or empty. An empty maturity date is a valid open-ended instrument.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func instrumentFromWire(value string) models.InstrumentType {
	switch models.InstrumentType(value) {
	case models.InstrumentAdvance, models.InstrumentLetterOfCredit:
		return models.InstrumentType(value)
	}
	return models.InstrumentOther
}
