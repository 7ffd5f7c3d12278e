package curve

import (
	"math"
	"testing"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatCurveClosedForm(t *testing.T) {
	c := Flat[numeric.F64](numeric.F64(0.05))
	assert.InDelta(t, 1.0, float64(c.D(0)), 1e-12)
	assert.InDelta(t, math.Exp(-0.05*2), float64(c.D(2)), 1e-12)
	assert.InDelta(t, 0.05, float64(c.R(3)), 1e-9)
}

func TestNewRejectsNonUnitDF0(t *testing.T) {
	_, err := New([]float64{0, 1}, []numeric.F64{0.99, 0.9}, LinearOnRates)
	require.Error(t, err)
}

func TestNewRejectsArbitrageableDFs(t *testing.T) {
	_, err := New([]float64{0, 1, 2}, []numeric.F64{1, 0.9, 0.95}, LinearOnRates)
	require.Error(t, err)
}

func TestNewRejectsNonIncreasingPillars(t *testing.T) {
	_, err := New([]float64{0, 1, 1}, []numeric.F64{1, 0.95, 0.9}, LinearOnRates)
	require.Error(t, err)
}

func TestInterpolationAgreesAtPillars(t *testing.T) {
	pillars := []float64{0, 1, 2, 5}
	dfs := []numeric.F64{1, 0.95, 0.90, 0.78}
	for _, interp := range []Interpolation{LinearOnRates, LinearOnLogDiscount, CubicSpline} {
		c, err := New(pillars, dfs, interp)
		require.NoError(t, err)
		for i, t0 := range pillars {
			assert.InDeltaf(t, float64(dfs[i]), float64(c.D(t0)), 1e-9, "interp=%v t=%v", interp, t0)
		}
	}
}

func TestExtrapolationSaturatesFlat(t *testing.T) {
	pillars := []float64{0, 1, 2}
	dfs := []numeric.F64{1, 0.95, 0.90}
	c, err := New(pillars, dfs, LinearOnLogDiscount)
	require.NoError(t, err)
	rLast := c.R(2)
	rBeyond := c.R(10)
	assert.InDelta(t, float64(rLast), float64(rBeyond), 1e-6)
}

func TestBootstrapReprcesDepositExactly(t *testing.T) {
	quotes := []Quote{{Maturity: 0.25, Rate: 0.05, Kind: Deposit}}
	c, err := Bootstrap(0, quotes, LinearOnRates)
	require.NoError(t, err)
	d := float64(c.D(0.25))
	residual := d*(1+0.05*0.25) - 1
	assert.InDelta(t, 0, residual, 1e-9)
}

func TestBootstrapSequentialPillarsMonotoneDF(t *testing.T) {
	quotes := []Quote{
		{Maturity: 0.5, Rate: 0.03, Kind: Deposit},
		{Maturity: 1, Rate: 0.032, Kind: Swap},
		{Maturity: 2, Rate: 0.035, Kind: Swap},
		{Maturity: 5, Rate: 0.04, Kind: Swap},
	}
	c, err := Bootstrap(0, quotes, LinearOnLogDiscount)
	require.NoError(t, err)
	prev := 1.0
	for _, m := range []float64{0.5, 1, 2, 5} {
		d := float64(c.D(m))
		assert.LessOrEqual(t, d, prev+1e-9)
		prev = d
	}
}

func TestBootstrapUnbracketableReturnsNoBracketError(t *testing.T) {
	quotes := []Quote{{Maturity: 1, Rate: -50, Kind: Swap}}
	_, err := Bootstrap(0, quotes, LinearOnRates)
	require.Error(t, err)
}

func TestForwardRateConsistentWithDiscountFactors(t *testing.T) {
	c := Flat[numeric.F64](numeric.F64(0.04))
	f := c.F(1, 2)
	assert.InDelta(t, 0.04, float64(f), 1e-9)
}

func TestCurveDualPropagatesTangentThroughInterpolation(t *testing.T) {
	pillars := []float64{0, 1, 2}
	dfs := []numeric.Dual{numeric.Constant(1), numeric.Seed(0.95), numeric.Constant(0.90)}
	c, err := New(pillars, dfs, LinearOnLogDiscount)
	require.NoError(t, err)
	out := c.D(1.5)
	assert.NotZero(t, out.Tangent)
}
