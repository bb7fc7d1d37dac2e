package valuation

import "bond-valuation/internal/model"

// Pricing is the output of PriceBond. CashFlows and DiscountFactors are
// index-aligned: element i belongs to period i+1.
type Pricing struct {
	Price           float64
	CashFlows       []model.PeriodCashFlow
	DiscountFactors []float64
}

// Metrics are the first and second order yield sensitivities of a priced bond.
type Metrics struct {
	MacaulayDuration float64
	ModifiedDuration float64
	Convexity        float64
}

// SensitivityParams controls the yield grid around the bond's own yield.
type SensitivityParams struct {
	HalfWidth float64
	Step      float64
}

// Valuation is the full result of one engine run.
// This is the primary artifact handed to the CLI and API layers.
type Valuation struct {
	Spec   model.BondSpec
	Result model.ValuationResult

	CashFlows       []model.PeriodCashFlow
	DiscountFactors []float64

	Sensitivity SensitivityParams
	Table       []model.SensitivityRow
}
