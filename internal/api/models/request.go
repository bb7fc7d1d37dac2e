package models

// ValuationRequest represents the request body for valuing a bond.
// Rates are percentages (6 = 6%), matching the dashboard inputs.
type ValuationRequest struct {
	BondFile         string           `json:"bond_file,omitempty"` // preset id from GET /bonds
	Bond             BondInput        `json:"bond"`
	Sensitivity      SensitivityInput `json:"sensitivity,omitempty"`
	IncludeCashFlows bool             `json:"include_cash_flows,omitempty"`
}

// BondInput defines bond parameters
type BondInput struct {
	Name            string  `json:"name,omitempty"`
	FaceValue       float64 `json:"face_value"`
	CouponRatePct   float64 `json:"coupon_rate_pct"`
	YieldPct        float64 `json:"ytm_pct"`
	YearsToMaturity int     `json:"years_to_maturity"`
	PaymentsPerYear int     `json:"payments_per_year"`
}

// SensitivityInput controls the yield grid (fractions, 0.02 = 2%).
type SensitivityInput struct {
	HalfWidth float64 `json:"half_width,omitempty"`
	Step      float64 `json:"step,omitempty"`
}

// CompareRequest values a base bond and a set of variations of it
type CompareRequest struct {
	Base       ValuationRequest `json:"base"`
	Variations []BondVariation  `json:"variations" binding:"required,min=1"`
}

// BondVariation overrides non-zero fields of the base bond
type BondVariation struct {
	Name string    `json:"name" binding:"required"`
	Bond BondInput `json:"bond"`
}

// SensitivityQuery is the query string of GET /sensitivity
type SensitivityQuery struct {
	FaceValue       float64 `form:"face" binding:"required"`
	CouponRatePct   float64 `form:"coupon"`
	YieldPct        float64 `form:"ytm"`
	YearsToMaturity int     `form:"years" binding:"required"`
	PaymentsPerYear int     `form:"freq" binding:"required"`
	HalfWidth       float64 `form:"half_width"`
	Step            float64 `form:"step"`
}
