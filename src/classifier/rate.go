package classifier

import "github.com/username/creditline/backend/src/utils"

// ToDisplayPercent converts a raw fractional rate into a display percentage,
// e.g. 0.035 -> 3.5, rounded to three decimal places.
func ToDisplayPercent(rate float64) float64 {
	return utils.RoundFloat(rate*100, 3)
}

// ToDisplayPercentPtr is the pointer form for optional rates; nil stays nil.
func ToDisplayPercentPtr(rate *float64) *float64 {
	if rate == nil {
		return nil
	}
	pct := ToDisplayPercent(*rate)
	return &pct
}
