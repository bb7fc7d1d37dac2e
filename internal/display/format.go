package display

import (
	"github.com/shopspring/decimal"

	"bond-valuation/internal/model"
)

// Rounding applied to engine output before it is shown to a user.
// The engine itself always returns full precision.
const (
	PricePlaces     = 2
	DurationPlaces  = 2
	ConvexityPlaces = 4
	PercentPlaces   = 2
)

// Summary is a ValuationResult rounded for display.
type Summary struct {
	Price            string `json:"price"`
	MacaulayDuration string `json:"macaulay_duration"`
	ModifiedDuration string `json:"modified_duration"`
	Convexity        string `json:"convexity"`
}

// Row is a SensitivityRow rounded for display, with the yield in percent.
type Row struct {
	YieldPct string `json:"yield_pct"`
	Price    string `json:"price"`
}

func Summarize(r model.ValuationResult) Summary {
	return Summary{
		Price:            Price(r.Price),
		MacaulayDuration: Fixed(r.MacaulayDuration, DurationPlaces),
		ModifiedDuration: Fixed(r.ModifiedDuration, DurationPlaces),
		Convexity:        Fixed(r.Convexity, ConvexityPlaces),
	}
}

func Table(rows []model.SensitivityRow) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{YieldPct: Percent(r.Yield), Price: Price(r.Price)}
	}
	return out
}

func Price(x float64) string { return Fixed(x, PricePlaces) }

// Percent renders a fraction (0.05) as a percentage string ("5.00").
func Percent(x float64) string {
	return decimal.NewFromFloat(x).Shift(2).StringFixed(PercentPlaces)
}

// Fixed rounds half away from zero to the given number of places.
func Fixed(x float64, places int32) string {
	return decimal.NewFromFloat(x).StringFixed(places)
}
