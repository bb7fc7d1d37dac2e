package model

// PeriodCashFlow is the cash paid at the end of period t (1-based).
// The final period carries the face value on top of the coupon.
type PeriodCashFlow struct {
	Period int
	Amount float64
}

// ValuationResult holds the price and risk metrics of a single valuation.
// Durations are expressed in periods, not years.
type ValuationResult struct {
	Price            float64
	MacaulayDuration float64
	ModifiedDuration float64
	Convexity        float64
}

// SensitivityRow is one sampled point of the price/yield curve.
type SensitivityRow struct {
	Yield float64
	Price float64
}
