package analysis

import (
	"testing"

	"bond-valuation/internal/model"
	"bond-valuation/internal/valuation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByRateRisk(t *testing.T) {
	bonds := []NamedBond{
		{ID: "short", Spec: model.BondSpec{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 2, PaymentsPerYear: 2}},
		{ID: "zero30", Spec: model.BondSpec{FaceValue: 100, CouponRate: 0, YieldToMaturity: 0.04, YearsToMaturity: 30, PaymentsPerYear: 2}},
		{ID: "broken", Spec: model.BondSpec{FaceValue: 100, CouponRate: 0.06, YieldToMaturity: 0.05, YearsToMaturity: 0, PaymentsPerYear: 2}},
		{ID: "ten", Spec: model.BondSpec{FaceValue: 100, CouponRate: 0.05, YieldToMaturity: 0.05, YearsToMaturity: 10, PaymentsPerYear: 1}},
	}

	ranked, skipped := RankByRateRisk(valuation.New(), bonds)
	require.Len(t, ranked, 3)
	assert.Equal(t, "zero30", ranked[0].ID)
	assert.Equal(t, "ten", ranked[1].ID)
	assert.Equal(t, "short", ranked[2].ID)

	require.Contains(t, skipped, "broken")
	assert.ErrorIs(t, skipped["broken"], model.ErrInvalidSpec)

	for _, r := range ranked {
		// Convexity makes the gain from a rate fall larger than the loss from a rise.
		assert.Greater(t, r.ShockDownPct, 0.0, r.ID)
		assert.Less(t, r.ShockUpPct, 0.0, r.ID)
		assert.Greater(t, r.ShockDownPct, -r.ShockUpPct, r.ID)
	}
}

func TestRankByRateRisk_DurationInYears(t *testing.T) {
	spec := model.BondSpec{FaceValue: 100, CouponRate: 0, YieldToMaturity: 0.04, YearsToMaturity: 30, PaymentsPerYear: 2}
	ranked, _ := RankByRateRisk(valuation.New(), []NamedBond{{ID: "z", Spec: spec}})
	require.Len(t, ranked, 1)

	assert.InDelta(t, 60.0, ranked[0].Result.MacaulayDuration, 1e-9)
	assert.InDelta(t, 60.0/1.02/2, ranked[0].ModifiedDurationYears, 1e-9)
}
