package models

import "bond-valuation/internal/display"

// ValuationResponse represents the response from a valuation
type ValuationResponse struct {
	Bond        BondEcho         `json:"bond"`
	Result      ValuationResult  `json:"result"`
	Display     display.Summary  `json:"display"`
	Sensitivity []SensitivityRow `json:"sensitivity"`
	CashFlows   []CashFlow       `json:"cash_flows,omitempty"`
}

// BondEcho is the bond that was actually valued, after preset merging
type BondEcho struct {
	BondInput
	Frequency    string  `json:"frequency"`
	PeriodCount  int     `json:"period_count"`
	PeriodCoupon float64 `json:"period_coupon"`
	PeriodYield  float64 `json:"period_yield"`
}

// ValuationResult contains full-precision engine output. Durations are in periods.
type ValuationResult struct {
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
}

// SensitivityRow is one point of the price/yield series
type SensitivityRow struct {
	Yield        float64 `json:"yield"`
	YieldPct     string  `json:"yield_pct"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
}

// CashFlow is one period of the cash-flow schedule
type CashFlow struct {
	Period         int     `json:"period"`
	Amount         float64 `json:"amount"`
	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`
}

// SensitivityResponse represents the response of GET /sensitivity
type SensitivityResponse struct {
	Rows []SensitivityRow `json:"rows"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Base       ValuationResponse  `json:"base"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Exactly one of
// Result and Error is set.
type ComparisonResult struct {
	Name        string           `json:"name"`
	Bond        BondInput        `json:"bond"`
	Result      *ValuationResult `json:"result,omitempty"`
	Display     *display.Summary `json:"display,omitempty"`
	PriceChange *float64         `json:"price_change,omitempty"` // vs. base
	Error       *ErrorDetail     `json:"error,omitempty"`
}

// BondInfo represents information about a bond preset
type BondInfo struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	File string    `json:"file"`
	Bond BondInput `json:"bond"`
}

// RankResponse represents the response from ranking presets
type RankResponse struct {
	Rankings []Ranking         `json:"rankings"`
	Skipped  map[string]string `json:"skipped,omitempty"` // preset id -> reason
}

// Ranking represents one ranked preset. Durations are in years.
type Ranking struct {
	Rank                  int             `json:"rank"`
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Result                ValuationResult `json:"result"`
	ModifiedDurationYears float64         `json:"modified_duration_years"`
	ConvexityYears        float64         `json:"convexity_years"`
	ShockDownPct          float64         `json:"shock_down_pct"`
	ShockUpPct            float64         `json:"shock_up_pct"`
}

// InputInfo describes one input of the valuation form
type InputInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "choice"
	Description string      `json:"description"`
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Choices     []int       `json:"choices,omitempty"`
	Default     interface{} `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
