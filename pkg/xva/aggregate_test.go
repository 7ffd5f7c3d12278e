package xva_test

import (
	"math"
	"testing"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"github.com/aristath/quantrisk/pkg/xva"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatProfile(t *testing.T, grid []float64, ee float64) *xva.ExposureProfile[numeric.F64] {
	samples := make([][]float64, len(grid))
	for i := range samples {
		samples[i] = []float64{ee, ee, ee}
	}
	p, err := xva.NewExposureProfileF64(grid, samples)
	require.NoError(t, err)
	return p
}

// E5: CVA on a flat EE=100 profile over a 5-point [0,1] grid with
// λ=0.02, LGD=0.4 matches 0.4·100·(1−e^(−0.02)) within 1e-6 (spec.md §8
// scenario E5). Because EE is flat, the trapezoidal survival-weighted
// sum telescopes exactly regardless of grid spacing.
func TestE5FlatExposureCVAMatchesClosedForm(t *testing.T) {
	grid := []float64{0, 0.25, 0.5, 0.75, 1.0}
	profile := flatProfile(t, grid, 100)

	portfolio := xva.Portfolio[numeric.F64]{
		Counterparties: []xva.Counterparty[numeric.F64]{
			{
				Name:         "CP1",
				HazardRate:   0.02,
				RecoveryRate: 0.6,
				NettingSets:  []xva.NettingSet[numeric.F64]{{Name: "NS1", Profile: profile}},
			},
		},
	}
	opts := xva.Options{
		TimeGrid:        grid,
		DiscountFactors: []float64{1, 1, 1, 1, 1},
	}

	result, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
	require.NoError(t, err)

	expected := 0.4 * 100 * (1 - math.Exp(-0.02))
	assert.InDelta(t, expected, result.CVA, 1e-6)
}

// CVA, DVA, FCA, FBA are each non-negative for non-negative exposure,
// hazard rates, spreads and discount factors (spec.md §4.5 invariant).
func TestNonNegativeXVAForNonNegativeInputs(t *testing.T) {
	grid := []float64{0, 0.5, 1.0, 1.5, 2.0}
	eeProfile := flatProfile(t, grid, 50)

	portfolio := xva.Portfolio[numeric.F64]{
		Counterparties: []xva.Counterparty[numeric.F64]{
			{
				Name:         "CP1",
				HazardRate:   0.01,
				RecoveryRate: 0.4,
				NettingSets:  []xva.NettingSet[numeric.F64]{{Name: "NS1", Profile: eeProfile}},
			},
		},
	}
	opts := xva.Options{
		TimeGrid:            grid,
		DiscountFactors:     []float64{1, 0.99, 0.98, 0.97, 0.96},
		FundingBorrowSpread: 0.01,
		FundingLendSpread:   0.005,
		OwnHazardRate:       0.015,
		OwnRecoveryRate:     0.5,
	}

	result, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.CVA, 0.0)
	assert.GreaterOrEqual(t, result.DVA, 0.0)
	assert.GreaterOrEqual(t, result.FCA, 0.0)
	assert.GreaterOrEqual(t, result.FBA, 0.0)
}

// A mismatched profile length fails with XvaError::TimeGridMismatch
// before any arithmetic runs (spec.md §4.5 invariant).
func TestComputeXVARejectsMismatchedProfileLength(t *testing.T) {
	grid := []float64{0, 0.5, 1.0}
	shortGrid := []float64{0, 1.0}
	profile := flatProfile(t, shortGrid, 10)

	portfolio := xva.Portfolio[numeric.F64]{
		Counterparties: []xva.Counterparty[numeric.F64]{
			{
				Name:         "CP1",
				HazardRate:   0.02,
				RecoveryRate: 0.5,
				NettingSets:  []xva.NettingSet[numeric.F64]{{Name: "NS1", Profile: profile}},
			},
		},
	}
	opts := xva.Options{TimeGrid: grid, DiscountFactors: []float64{1, 1, 1}}

	_, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
	require.Error(t, err)
	var xvaErr qerrors.XvaError
	require.ErrorAs(t, err, &xvaErr)
	assert.Equal(t, "TimeGridMismatch", xvaErr.Kind)
}

// An empty time grid fails with XvaError::EmptyTimeGrid.
func TestComputeXVARejectsEmptyTimeGrid(t *testing.T) {
	portfolio := xva.Portfolio[numeric.F64]{}
	_, err := xva.ComputeXVA[numeric.F64](portfolio, xva.Options{})
	require.Error(t, err)
	var xvaErr qerrors.XvaError
	require.ErrorAs(t, err, &xvaErr)
	assert.Equal(t, "EmptyTimeGrid", xvaErr.Kind)
}

// CVA is non-decreasing in both hazard rate and LGD (spec.md §8
// property 8).
func TestCVANonDecreasingInHazardRateAndLGD(t *testing.T) {
	grid := []float64{0, 0.5, 1.0}
	profile := flatProfile(t, grid, 100)
	opts := xva.Options{TimeGrid: grid, DiscountFactors: []float64{1, 1, 1}}

	cvaFor := func(hazard, recovery float64) float64 {
		portfolio := xva.Portfolio[numeric.F64]{
			Counterparties: []xva.Counterparty[numeric.F64]{
				{Name: "CP1", HazardRate: hazard, RecoveryRate: recovery,
					NettingSets: []xva.NettingSet[numeric.F64]{{Name: "NS1", Profile: profile}}},
			},
		}
		result, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
		require.NoError(t, err)
		return result.CVA
	}

	low := cvaFor(0.01, 0.4)
	high := cvaFor(0.05, 0.4)
	assert.Greater(t, high, low)

	lowLgd := cvaFor(0.02, 0.6) // higher recovery -> lower LGD -> lower CVA
	highLgd := cvaFor(0.02, 0.2)
	assert.Greater(t, highLgd, lowLgd)
}

// FVA(s,s) = 0 when the EE and ENE profiles are equal and funding
// spreads match on both legs (spec.md §8 property 8).
func TestFVAZeroWhenSymmetric(t *testing.T) {
	grid := []float64{0, 0.5, 1.0}
	// A profile with EE == ENE at every grid point: build it directly
	// rather than through NewExposureProfileF64, whose max(v,0)/max(-v,0)
	// split can never make EE and ENE equal for a nonzero sample.
	flat := []numeric.F64{60, 60, 60}
	profile := &xva.ExposureProfile[numeric.F64]{TimeGrid: grid, EE: flat, ENE: flat}

	portfolio := xva.Portfolio[numeric.F64]{
		Counterparties: []xva.Counterparty[numeric.F64]{
			{Name: "CP1", HazardRate: 0.02, RecoveryRate: 0.4,
				NettingSets: []xva.NettingSet[numeric.F64]{{Name: "NS1", Profile: profile}}},
		},
	}
	opts := xva.Options{
		TimeGrid:            grid,
		DiscountFactors:     []float64{1, 0.99, 0.98},
		FundingBorrowSpread: 0.015,
		FundingLendSpread:   0.015,
	}

	result, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
	require.NoError(t, err)
	assert.InDelta(t, 0, result.FVA, 1e-12)
}

// Aggregation sums netting-set contributions into the counterparty level
// and counterparty contributions into the portfolio level.
func TestAggregationSumsBottomUp(t *testing.T) {
	grid := []float64{0, 1.0}
	p1 := flatProfile(t, grid, 100)
	p2 := flatProfile(t, grid, 50)

	portfolio := xva.Portfolio[numeric.F64]{
		Counterparties: []xva.Counterparty[numeric.F64]{
			{
				Name:         "CP1",
				HazardRate:   0.02,
				RecoveryRate: 0.6,
				NettingSets: []xva.NettingSet[numeric.F64]{
					{Name: "NS1", Profile: p1},
					{Name: "NS2", Profile: p2},
				},
			},
		},
	}
	opts := xva.Options{TimeGrid: grid, DiscountFactors: []float64{1, 1}}

	result, err := xva.ComputeXVA[numeric.F64](portfolio, opts)
	require.NoError(t, err)
	require.Len(t, result.Counterparties, 1)
	require.Len(t, result.Counterparties[0].NettingSets, 2)

	sum := result.Counterparties[0].NettingSets[0].CVA + result.Counterparties[0].NettingSets[1].CVA
	assert.InDelta(t, sum, result.Counterparties[0].CVA, 1e-9)
	assert.InDelta(t, result.Counterparties[0].CVA, result.CVA, 1e-9)
}
