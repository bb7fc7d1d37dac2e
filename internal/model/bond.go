package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec is returned whenever a bond cannot be valued from its inputs.
// Callers should test for it with errors.Is.
var ErrInvalidSpec = errors.New("invalid bond spec")

// MaxPeriods bounds YearsToMaturity*PaymentsPerYear: 100 years of daily coupons.
const MaxPeriods = 100 * 365

// BondSpec defines a plain fixed-coupon bond.
// Units:
// - FaceValue: currency units repaid at maturity
// - CouponRate: annual coupon as a fraction of face (0.06 = 6%)
// - YieldToMaturity: annual yield as a fraction (0.05 = 5%)
// - YearsToMaturity: whole years
// - PaymentsPerYear: coupon periods per year (conventionally 1, 2, 4 or 12)
type BondSpec struct {
	FaceValue       float64
	CouponRate      float64
	YieldToMaturity float64
	YearsToMaturity int
	PaymentsPerYear int
}

func NewBondSpec(face, couponRate, ytm float64, years, paymentsPerYear int) (BondSpec, error) {
	s := BondSpec{
		FaceValue:       face,
		CouponRate:      couponRate,
		YieldToMaturity: ytm,
		YearsToMaturity: years,
		PaymentsPerYear: paymentsPerYear,
	}
	if err := s.Validate(); err != nil {
		return BondSpec{}, err
	}
	return s, nil
}

func (s BondSpec) Validate() error {
	if math.IsNaN(s.FaceValue) || math.IsInf(s.FaceValue, 0) || s.FaceValue <= 0 {
		return invalid("FaceValue must be > 0")
	}
	if math.IsNaN(s.CouponRate) || math.IsInf(s.CouponRate, 0) || s.CouponRate < 0 {
		return invalid("CouponRate must be >= 0")
	}
	if math.IsNaN(s.YieldToMaturity) || math.IsInf(s.YieldToMaturity, 0) {
		return invalid("YieldToMaturity must be finite")
	}
	if s.PaymentsPerYear <= 0 {
		return invalid("PaymentsPerYear must be > 0")
	}
	if s.YearsToMaturity <= 0 {
		return invalid("YearsToMaturity must be > 0")
	}
	// Checked by division so the product cannot overflow.
	if s.YearsToMaturity > MaxPeriods/s.PaymentsPerYear {
		return invalid(fmt.Sprintf("YearsToMaturity * PaymentsPerYear must be <= %d", MaxPeriods))
	}
	if s.PeriodCount() < 1 {
		return invalid("YearsToMaturity * PaymentsPerYear must be >= 1")
	}
	// A per-period yield at or below -100% makes the discount factor zero or negative.
	if s.PeriodYield() <= -1 {
		return invalid("YieldToMaturity / PaymentsPerYear must be > -1")
	}
	return nil
}

// PeriodCoupon is the cash coupon paid each period.
func (s BondSpec) PeriodCoupon() float64 {
	return s.FaceValue * s.CouponRate / float64(s.PaymentsPerYear)
}

// PeriodCount is the number of coupon periods to maturity.
func (s BondSpec) PeriodCount() int {
	return s.YearsToMaturity * s.PaymentsPerYear
}

// PeriodYield is the flat per-period discount rate.
func (s BondSpec) PeriodYield() float64 {
	return s.YieldToMaturity / float64(s.PaymentsPerYear)
}

// WithYield returns a copy of s priced off a different annual yield.
func (s BondSpec) WithYield(ytm float64) BondSpec {
	s.YieldToMaturity = ytm
	return s
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, msg)
}
