package surface

import (
	"testing"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatSurface(t *testing.T) {
	s := Flat[numeric.F64](numeric.F64(0.22))
	assert.Equal(t, 0.22, float64(s.Sigma(100, 1)))
	assert.Equal(t, 0.22, float64(s.Sigma(50, 5)))
}

func TestGridSurfaceAgreesAtNodes(t *testing.T) {
	xs := []float64{80, 100, 120}
	expiries := []float64{0.5, 1, 2}
	grid := [][]numeric.F64{
		{0.25, 0.23, 0.22},
		{0.20, 0.19, 0.18},
		{0.24, 0.22, 0.21},
	}
	s, err := NewGrid[numeric.F64](StrikeExpiry, xs, expiries, grid)
	require.NoError(t, err)
	for i, x := range xs {
		for j, e := range expiries {
			assert.InDelta(t, float64(grid[i][j]), float64(s.Sigma(x, e)), 1e-9)
		}
	}
}

func TestGridSurfaceSaturatesOutOfBounds(t *testing.T) {
	xs := []float64{80, 120}
	expiries := []float64{0.5, 2}
	grid := [][]numeric.F64{{0.25, 0.22}, {0.20, 0.18}}
	s, err := NewGrid[numeric.F64](StrikeExpiry, xs, expiries, grid)
	require.NoError(t, err)
	assert.Equal(t, float64(s.Sigma(80, 0.5)), float64(s.Sigma(10, 0.01)))
	assert.Equal(t, float64(s.Sigma(120, 2)), float64(s.Sigma(1000, 100)))
}

func TestNewGridRejectsNonPositiveVol(t *testing.T) {
	xs := []float64{80, 120}
	expiries := []float64{1}
	grid := [][]numeric.F64{{0}, {0.2}}
	_, err := NewGrid[numeric.F64](StrikeExpiry, xs, expiries, grid)
	require.Error(t, err)
}

func TestCalibrateSABRGridReprocesQuotesClosely(t *testing.T) {
	expiries := []float64{1.0}
	forwards := []float64{100}
	quotes := [][]SmileQuote{
		{
			{Strike: 80, Vol: 0.28},
			{Strike: 90, Vol: 0.24},
			{Strike: 100, Vol: 0.20},
			{Strike: 110, Vol: 0.19},
			{Strike: 120, Vol: 0.21},
		},
	}
	s, params, err := CalibrateSABRGrid(expiries, forwards, 1.0, quotes, []float64{80, 90, 100, 110, 120})
	require.NoError(t, err)
	require.Len(t, params, 1)
	for _, q := range quotes[0] {
		got := float64(s.Sigma(q.Strike, 1.0))
		assert.InDelta(t, q.Vol, got, 0.03)
	}
}
