package analysis

import (
	"fmt"
	"sort"

	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"
)

// ShockSize is the parallel yield move used for RateRisk.Shock*Pct.
const ShockSize = 0.01

// NamedBond is a bond to be ranked, usually loaded from a preset file.
type NamedBond struct {
	ID   string
	Name string
	Spec model.BondSpec
}

// RateRisk summarises how exposed one bond is to a move in its yield.
// Durations here are in years so bonds with different coupon frequencies
// can be compared.
type RateRisk struct {
	NamedBond
	Result model.ValuationResult

	ModifiedDurationYears float64
	ConvexityYears        float64

	// Full repricings at yield -/+ ShockSize, as a percentage of price.
	ShockDownPct float64
	ShockUpPct   float64
}

// RankByRateRisk values each bond and sorts descending by modified duration
// in years. Bonds that cannot be valued are returned in skipped, keyed by ID.
func RankByRateRisk(engine *valuation.Engine, bonds []NamedBond) (ranked []RateRisk, skipped map[string]error) {
	skipped = map[string]error{}
	ranked = make([]RateRisk, 0, len(bonds))
	for _, b := range bonds {
		r, err := computeRateRisk(engine, b)
		if err != nil {
			skipped[b.ID] = err
			continue
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ModifiedDurationYears > ranked[j].ModifiedDurationYears
	})
	return ranked, skipped
}

func computeRateRisk(engine *valuation.Engine, b NamedBond) (RateRisk, error) {
	p, err := engine.PriceBond(b.Spec)
	if err != nil {
		return RateRisk{}, err
	}
	m, err := engine.DurationConvexity(b.Spec, p)
	if err != nil {
		return RateRisk{}, err
	}

	y := b.Spec.YieldToMaturity
	down, err := engine.PriceBond(b.Spec.WithYield(y - ShockSize))
	if err != nil {
		return RateRisk{}, fmt.Errorf("shock down: %w", err)
	}
	up, err := engine.PriceBond(b.Spec.WithYield(y + ShockSize))
	if err != nil {
		return RateRisk{}, fmt.Errorf("shock up: %w", err)
	}

	ppy := float64(b.Spec.PaymentsPerYear)
	return RateRisk{
		NamedBond: b,
		Result: model.ValuationResult{
			Price:            p.Price,
			MacaulayDuration: m.MacaulayDuration,
			ModifiedDuration: m.ModifiedDuration,
			Convexity:        m.Convexity,
		},
		ModifiedDurationYears: m.ModifiedDuration / ppy,
		ConvexityYears:        m.Convexity / (ppy * ppy),
		ShockDownPct:          100 * (down.Price - p.Price) / p.Price,
		ShockUpPct:            100 * (up.Price - p.Price) / p.Price,
	}, nil
}
