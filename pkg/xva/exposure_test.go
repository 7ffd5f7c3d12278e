package xva_test

import (
	"testing"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/xva"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExposureProfileF64SeparatesPositiveAndNegativeExposure(t *testing.T) {
	grid := []float64{0, 1}
	samples := [][]float64{
		{10, -5, 20},
		{-10, 5, -20},
	}
	profile, err := xva.NewExposureProfileF64(grid, samples)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, float64(profile.EE[0]), 1e-9) // mean(max(10,0), max(-5,0)->0, max(20,0)) = (10+0+20)/3
	assert.InDelta(t, 5.0/3, float64(profile.ENE[0]), 1e-9)
}

func TestNewExposureProfileGenericCarriesDualTangent(t *testing.T) {
	grid := []float64{0, 1}
	samples := [][]numeric.Dual{
		{numeric.Seed(10), numeric.Seed(-5)},
		{numeric.Seed(-10), numeric.Seed(5)},
	}
	profile, err := xva.NewExposureProfile(grid, samples, numeric.Constant(1e-6))
	require.NoError(t, err)

	for _, v := range profile.EE {
		assert.NotZero(t, v.Value())
	}
	// Each sample was seeded with tangent=1, so the smoothed-mean reduction
	// must carry a nonzero tangent through to EE/ENE.
	tangent, ok := numeric.Tangent(profile.EE[0])
	require.True(t, ok)
	assert.NotEqual(t, 0.0, tangent)
}

func TestNewExposureProfileRejectsMismatchedGrid(t *testing.T) {
	grid := []float64{0, 1, 2}
	samples := [][]numeric.F64{{1, 2}}
	_, err := xva.NewExposureProfile(grid, samples, numeric.F64(1e-6))
	require.Error(t, err)
}
