package valuation

import (
	"fmt"
	"math"

	"bond-valuation/internal/model"
)

// Engine prices fixed-coupon bonds. It holds no state and is safe for
// concurrent use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// PriceBond discounts every period's cash flow at the flat per-period yield.
func (e *Engine) PriceBond(spec model.BondSpec) (*Pricing, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := spec.PeriodCount()
	coupon := spec.PeriodCoupon()
	py := spec.PeriodYield()

	flows := make([]model.PeriodCashFlow, n)
	factors := make([]float64, n)
	price := 0.0

	for t := 1; t <= n; t++ {
		amount := coupon
		if t == n {
			amount += spec.FaceValue
		}
		// (1+0)^t is exactly 1, so the zero-yield case needs no special path.
		df := math.Pow(1+py, float64(t))

		flows[t-1] = model.PeriodCashFlow{Period: t, Amount: amount}
		factors[t-1] = df
		price += amount / df
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, fmt.Errorf("%w: price evaluated to %v at yield %v", model.ErrInvalidSpec, price, spec.YieldToMaturity)
	}

	return &Pricing{
		Price:           price,
		CashFlows:       flows,
		DiscountFactors: factors,
	}, nil
}

// DurationConvexity derives Macaulay duration, modified duration and
// convexity (all in periods) from a pricing produced by PriceBond.
func (e *Engine) DurationConvexity(spec model.BondSpec, p *Pricing) (Metrics, error) {
	if p == nil {
		return Metrics{}, fmt.Errorf("%w: pricing is nil", model.ErrInvalidSpec)
	}
	if p.Price <= 0 || math.IsNaN(p.Price) {
		return Metrics{}, fmt.Errorf("%w: price must be > 0, got %v", model.ErrInvalidSpec, p.Price)
	}
	if len(p.CashFlows) != len(p.DiscountFactors) {
		return Metrics{}, fmt.Errorf("%w: %d cash flows but %d discount factors", model.ErrInvalidSpec, len(p.CashFlows), len(p.DiscountFactors))
	}

	py := spec.PeriodYield()
	var weighted, curvature float64
	for i, cf := range p.CashFlows {
		t := float64(cf.Period)
		weighted += t * cf.Amount / p.DiscountFactors[i]
		curvature += cf.Amount * t * (t + 1) / math.Pow(1+py, t+2)
	}

	mac := weighted / p.Price
	return Metrics{
		MacaulayDuration: mac,
		ModifiedDuration: mac / (1 + py),
		Convexity:        curvature / p.Price,
	}, nil
}

// SensitivityTable reprices the bond at each point of the yield grid
// around center. Every row is an independent full repricing.
func (e *Engine) SensitivityTable(spec model.BondSpec, center float64, params SensitivityParams) ([]model.SensitivityRow, error) {
	yields, err := YieldGrid(center, params.HalfWidth, params.Step)
	if err != nil {
		return nil, err
	}

	rows := make([]model.SensitivityRow, 0, len(yields))
	for _, y := range yields {
		p, err := e.PriceBond(spec.WithYield(y))
		if err != nil {
			return nil, fmt.Errorf("yield %v: %w", y, err)
		}
		rows = append(rows, model.SensitivityRow{Yield: y, Price: p.Price})
	}
	return rows, nil
}

// Value runs the whole pipeline: price, risk metrics, then the sensitivity
// table around the bond's own yield. Nothing is returned on failure.
func (e *Engine) Value(spec model.BondSpec, params SensitivityParams) (*Valuation, error) {
	p, err := e.PriceBond(spec)
	if err != nil {
		return nil, fmt.Errorf("price bond: %w", err)
	}
	m, err := e.DurationConvexity(spec, p)
	if err != nil {
		return nil, fmt.Errorf("duration/convexity: %w", err)
	}
	table, err := e.SensitivityTable(spec, spec.YieldToMaturity, params)
	if err != nil {
		return nil, fmt.Errorf("sensitivity table: %w", err)
	}

	return &Valuation{
		Spec: spec,
		Result: model.ValuationResult{
			Price:            p.Price,
			MacaulayDuration: m.MacaulayDuration,
			ModifiedDuration: m.ModifiedDuration,
			Convexity:        m.Convexity,
		},
		CashFlows:       p.CashFlows,
		DiscountFactors: p.DiscountFactors,
		Sensitivity:     params,
		Table:           table,
	}, nil
}
