package valuation

import (
	"math"
	"sync"
	"testing"

	"bond-valuation/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func semiAnnual5y() model.BondSpec {
	return model.BondSpec{
		FaceValue:       100,
		CouponRate:      0.06,
		YieldToMaturity: 0.05,
		YearsToMaturity: 5,
		PaymentsPerYear: 2,
	}
}

func TestPriceBond_ReferenceScenario(t *testing.T) {
	spec := semiAnnual5y()
	assert.InDelta(t, 3.0, spec.PeriodCoupon(), 1e-12)
	assert.Equal(t, 10, spec.PeriodCount())
	assert.InDelta(t, 0.025, spec.PeriodYield(), 1e-12)

	p, err := New().PriceBond(spec)
	require.NoError(t, err)
	assert.InDelta(t, 104.38, p.Price, 0.5)
	assert.InDelta(t, 104.376, p.Price, 1e-3)

	require.Len(t, p.CashFlows, 10)
	require.Len(t, p.DiscountFactors, 10)
	for i, cf := range p.CashFlows[:9] {
		assert.Equal(t, i+1, cf.Period)
		assert.InDelta(t, 3.0, cf.Amount, 1e-12)
	}
	assert.Equal(t, 10, p.CashFlows[9].Period)
	assert.InDelta(t, 103.0, p.CashFlows[9].Amount, 1e-12)
	assert.InDelta(t, 1.025, p.DiscountFactors[0], 1e-12)
	assert.InDelta(t, math.Pow(1.025, 10), p.DiscountFactors[9], 1e-12)
}

func TestPriceBond_ZeroYieldIsUndiscountedSum(t *testing.T) {
	cases := []model.BondSpec{
		{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0, YearsToMaturity: 5, PaymentsPerYear: 2},
		{FaceValue: 1000, CouponRate: 0.045, YieldToMaturity: 0, YearsToMaturity: 30, PaymentsPerYear: 12},
		{FaceValue: 50, CouponRate: 0, YieldToMaturity: 0, YearsToMaturity: 1, PaymentsPerYear: 1},
	}
	for _, spec := range cases {
		p, err := New().PriceBond(spec)
		require.NoError(t, err)

		want := spec.FaceValue + spec.PeriodCoupon()*float64(spec.PeriodCount())
		assert.InDelta(t, want, p.Price, 1e-9)
		for _, df := range p.DiscountFactors {
			assert.Equal(t, 1.0, df)
		}
	}
	p, err := New().PriceBond(cases[0])
	require.NoError(t, err)
	assert.InDelta(t, 130.0, p.Price, 1e-9)
}

func TestPriceBond_ParBond(t *testing.T) {
	e := New()
	for _, years := range []int{1, 5, 10, 30} {
		for _, freq := range []int{1, 2, 4, 12} {
			spec := model.BondSpec{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.06, YearsToMaturity: years, PaymentsPerYear: freq}
			p, err := e.PriceBond(spec)
			require.NoError(t, err)
			assert.InDelta(t, 100.0, p.Price, 0.01, "years=%d freq=%d", years, freq)
			assert.InEpsilon(t, 100.0, p.Price, 1e-6, "years=%d freq=%d", years, freq)
		}
	}
}

func TestPriceBond_DecreasingInYield(t *testing.T) {
	e := New()
	spec := semiAnnual5y()
	prev := math.Inf(1)
	for y := 0.001; y < 0.20; y += 0.0025 {
		p, err := e.PriceBond(spec.WithYield(y))
		require.NoError(t, err)
		assert.Less(t, p.Price, prev, "yield %v", y)
		prev = p.Price
	}
}

func TestPriceBond_NegativeYield(t *testing.T) {
	spec := semiAnnual5y().WithYield(-0.01)
	p, err := New().PriceBond(spec)
	require.NoError(t, err)
	assert.Greater(t, p.Price, 130.0)
}

func TestPriceBond_InvalidSpec(t *testing.T) {
	cases := map[string]model.BondSpec{
		"zero years":            {FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 0, PaymentsPerYear: 2},
		"zero frequency":        {FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 5, PaymentsPerYear: 0},
		"zero face":             {FaceValue: 0, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 5, PaymentsPerYear: 2},
		"yield at -100%":        {FaceValue: 100, CouponRate: 0.06, YieldToMaturity: -2, YearsToMaturity: 5, PaymentsPerYear: 2},
		"period count overflow": {FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 1<<62 + 1, PaymentsPerYear: 2},
		"too many periods":      {FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 2_000_000_000, PaymentsPerYear: 12},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := New().PriceBond(spec)
			require.ErrorIs(t, err, model.ErrInvalidSpec)
			assert.Nil(t, p)
		})
	}
}

func TestDurationConvexity_ReferenceScenario(t *testing.T) {
	e := New()
	spec := semiAnnual5y()
	p, err := e.PriceBond(spec)
	require.NoError(t, err)

	m, err := e.DurationConvexity(spec, p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.MacaulayDuration, 8.5)
	assert.LessOrEqual(t, m.MacaulayDuration, 9.0)
	assert.Less(t, m.ModifiedDuration, m.MacaulayDuration)
	assert.InDelta(t, m.MacaulayDuration/1.025, m.ModifiedDuration, 1e-12)
	assert.Greater(t, m.Convexity, 0.0)
}

func TestDurationConvexity_Bounds(t *testing.T) {
	e := New()
	for _, spec := range []model.BondSpec{
		{FaceValue: 100, CouponRate: 0.15, YieldToMaturity: 0.15, YearsToMaturity: 30, PaymentsPerYear: 1},
		{FaceValue: 100, CouponRate: 0.01, YieldToMaturity: 0.12, YearsToMaturity: 1, PaymentsPerYear: 12},
		{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0, YearsToMaturity: 7, PaymentsPerYear: 4},
		{FaceValue: 100, CouponRate: 0.03, YieldToMaturity: -0.005, YearsToMaturity: 3, PaymentsPerYear: 2},
	} {
		p, err := e.PriceBond(spec)
		require.NoError(t, err)
		m, err := e.DurationConvexity(spec, p)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, m.MacaulayDuration, 1.0)
		assert.LessOrEqual(t, m.MacaulayDuration, float64(spec.PeriodCount())+1e-9)
		assert.InDelta(t, m.MacaulayDuration/(1+spec.PeriodYield()), m.ModifiedDuration, 1e-12)
	}
}

func TestDurationConvexity_ZeroCouponMaturesAtN(t *testing.T) {
	e := New()
	spec := model.BondSpec{FaceValue: 100, CouponRate: 0, YieldToMaturity: 0.04, YearsToMaturity: 10, PaymentsPerYear: 2}
	p, err := e.PriceBond(spec)
	require.NoError(t, err)
	m, err := e.DurationConvexity(spec, p)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, m.MacaulayDuration, 1e-9)
}

func TestDurationConvexity_MatchesFiniteDifferences(t *testing.T) {
	e := New()
	spec := semiAnnual5y()
	p, err := e.PriceBond(spec)
	require.NoError(t, err)
	m, err := e.DurationConvexity(spec, p)
	require.NoError(t, err)

	// Bump the per-period yield by h, i.e. the annual yield by h*frequency.
	h := 1e-4
	bump := h * float64(spec.PaymentsPerYear)
	up, err := e.PriceBond(spec.WithYield(spec.YieldToMaturity + bump))
	require.NoError(t, err)
	down, err := e.PriceBond(spec.WithYield(spec.YieldToMaturity - bump))
	require.NoError(t, err)

	dur := -(up.Price - down.Price) / (2 * h * p.Price)
	conv := (up.Price + down.Price - 2*p.Price) / (h * h * p.Price)
	assert.InEpsilon(t, m.ModifiedDuration, dur, 1e-4)
	assert.InEpsilon(t, m.Convexity, conv, 1e-3)
}

func TestDurationConvexity_RejectsNonPositivePrice(t *testing.T) {
	e := New()
	spec := semiAnnual5y()
	_, err := e.DurationConvexity(spec, &Pricing{Price: 0})
	require.ErrorIs(t, err, model.ErrInvalidSpec)
	_, err = e.DurationConvexity(spec, nil)
	require.ErrorIs(t, err, model.ErrInvalidSpec)
}

func TestSensitivityTable_Defaults(t *testing.T) {
	e := New()
	spec := semiAnnual5y()
	rows, err := e.SensitivityTable(spec, spec.YieldToMaturity, DefaultSensitivity())
	require.NoError(t, err)
	require.Len(t, rows, 9)

	assert.InDelta(t, 0.03, rows[0].Yield, 1e-12)
	assert.InDelta(t, 0.07, rows[8].Yield, 1e-12)
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].Yield, rows[i-1].Yield)
		assert.Less(t, rows[i].Price, rows[i-1].Price)
	}

	base, err := e.PriceBond(spec)
	require.NoError(t, err)
	assert.InDelta(t, base.Price, rows[4].Price, 1e-9)

	// Each row is a full repricing, not an approximation.
	at, err := e.PriceBond(spec.WithYield(rows[0].Yield))
	require.NoError(t, err)
	assert.Equal(t, at.Price, rows[0].Price)
}

func TestSensitivityTable_CrossesZeroYield(t *testing.T) {
	spec := semiAnnual5y().WithYield(0.01)
	rows, err := New().SensitivityTable(spec, spec.YieldToMaturity, DefaultSensitivity())
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.InDelta(t, -0.01, rows[0].Yield, 1e-12)
	assert.Greater(t, rows[0].Price, 130.0)
}

func TestValue_Pipeline(t *testing.T) {
	v, err := New().Value(semiAnnual5y(), DefaultSensitivity())
	require.NoError(t, err)
	assert.InDelta(t, 104.376, v.Result.Price, 1e-3)
	assert.Len(t, v.CashFlows, 10)
	assert.Len(t, v.Table, 9)
	assert.Equal(t, DefaultSensitivity(), v.Sensitivity)
}

func TestValue_FailsWithoutPartialResult(t *testing.T) {
	spec := semiAnnual5y()
	spec.YearsToMaturity = 0
	v, err := New().Value(spec, DefaultSensitivity())
	require.ErrorIs(t, err, model.ErrInvalidSpec)
	assert.Nil(t, v)

	v, err = New().Value(semiAnnual5y(), SensitivityParams{HalfWidth: 0.02, Step: 0})
	require.ErrorIs(t, err, model.ErrInvalidSpec)
	assert.Nil(t, v)
}

func TestValue_ConcurrentCallers(t *testing.T) {
	e := New()
	want, err := e.Value(semiAnnual5y(), DefaultSensitivity())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Valuation, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := e.Value(semiAnnual5y(), DefaultSensitivity())
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, want.Result, v.Result)
		assert.Equal(t, want.Table, v.Table)
	}
}
