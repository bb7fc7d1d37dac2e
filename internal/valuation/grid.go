package valuation

import (
	"fmt"
	"math"

	"bond-valuation/internal/model"
)

const (
	DefaultHalfWidth = 0.02
	DefaultStep      = 0.005

	// MaxGridPoints bounds a single sensitivity request.
	MaxGridPoints = 10001
)

// gridTolerance absorbs representation error in 2*halfWidth/step, e.g.
// 0.04/0.005 evaluates to 7.999999999999999.
const gridTolerance = 1e-9

func DefaultSensitivity() SensitivityParams {
	return SensitivityParams{HalfWidth: DefaultHalfWidth, Step: DefaultStep}
}

// WithDefaults fills zero fields with the package defaults.
func (p SensitivityParams) WithDefaults() SensitivityParams {
	if p.HalfWidth == 0 {
		p.HalfWidth = DefaultHalfWidth
	}
	if p.Step == 0 {
		p.Step = DefaultStep
	}
	return p
}

// YieldGrid returns floor(2*halfWidth/step)+1 ascending yields starting at
// center-halfWidth. Points are computed as lower+i*step rather than by
// repeated addition, so the upper end point is present whenever halfWidth is
// a multiple of step.
func YieldGrid(center, halfWidth, step float64) ([]float64, error) {
	if math.IsNaN(center) || math.IsInf(center, 0) {
		return nil, fmt.Errorf("%w: center yield must be finite", model.ErrInvalidSpec)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step must be > 0", model.ErrInvalidSpec)
	}
	if !(halfWidth >= 0) || math.IsInf(halfWidth, 0) {
		return nil, fmt.Errorf("%w: half width must be >= 0", model.ErrInvalidSpec)
	}

	span := 2 * halfWidth / step
	if span+1 > MaxGridPoints {
		return nil, fmt.Errorf("%w: grid of %.0f points exceeds %d", model.ErrInvalidSpec, span+1, MaxGridPoints)
	}
	count := int(math.Floor(span+gridTolerance)) + 1

	lower := center - halfWidth
	out := make([]float64, count)
	for i := range out {
		out[i] = lower + float64(i)*step
	}
	return out, nil
}
