package xva

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
)

// weightedTrapz folds values (length n) against weights (length n-1) as
// Σ 0.5*(values[i]+values[i+1])*weights[i]: a trapezoidal rule where the
// "width" of each panel is whatever weight the caller supplies (a survival
// probability decrement for CVA/DVA, a funding-cost increment for
// FCA/FBA) rather than always a plain Δt. Generic over numeric.Number so
// a Dual-valued exposure profile keeps its tangent through the integral;
// gonum's trapz helper is float64-only and can't do that.
func weightedTrapz[F numeric.Number[F]](values []F, weights []float64) F {
	var acc F
	started := false
	for i := 0; i < len(values)-1 && i < len(weights); i++ {
		avg := numeric.DivC(values[i].Add(values[i+1]), 2)
		term := numeric.MulC(avg, weights[i])
		if !started {
			acc = term
			started = true
		} else {
			acc = acc.Add(term)
		}
	}
	return acc
}

// survivalDiffs returns, for a flat-hazard survival curve Q(t)=exp(-λt),
// the per-panel decrements Q(t_i)-Q(t_i+1) used to weight CVA/DVA's
// trapezoidal sum.
func survivalDiffs(hazardRate float64, grid []float64) []float64 {
	diffs := make([]float64, max(len(grid)-1, 0))
	for i := range diffs {
		diffs[i] = survival(hazardRate, grid[i]) - survival(hazardRate, grid[i+1])
	}
	return diffs
}

func survival(hazardRate, t float64) float64 {
	return math.Exp(-hazardRate * t)
}

// fundingWeights returns, for a funding spread s and discount factors DF
// aligned to grid, the per-panel weights s*DF(t_i)*(t_i+1-t_i) used by
// FCA/FBA's trapezoidal sum.
func fundingWeights(spread float64, discountFactors, grid []float64) []float64 {
	weights := make([]float64, max(len(grid)-1, 0))
	for i := range weights {
		weights[i] = spread * discountFactors[i] * (grid[i+1] - grid[i])
	}
	return weights
}
