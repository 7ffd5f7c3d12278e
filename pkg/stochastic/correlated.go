package stochastic

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"gonum.org/v1/gonum/mat"
)

// Correlated composes n single-factor models (GBM, HullWhite1F, CIR —
// each contributing exactly one Brownian driver) under a shared
// correlation matrix, per spec.md §3's "hybrid Correlated(models, C) where
// C = L*L^T". The Cholesky factor L is computed once at construction with
// gonum/mat, a float64-only preprocessing step; every per-path, per-step
// use of L below is plain Number[F] arithmetic so AD still flows through
// the correlated randoms.
type Correlated[F numeric.Number[F]] struct {
	models []StochasticModel[F]
	l      [][]float64 // lower-triangular Cholesky factor, row-major, l[i][j] for j<=i
}

// NewCorrelated validates that every model drives exactly one Brownian
// factor and that corr is a valid (symmetric positive-definite)
// correlation matrix, then factorizes it.
func NewCorrelated[F numeric.Number[F]](models []StochasticModel[F], corr [][]float64) (*Correlated[F], error) {
	n := len(models)
	if n == 0 {
		return nil, qerrors.ConfigError{Kind: "MissingParameter", Field: "models", Value: n}
	}
	if len(corr) != n {
		return nil, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "corr", Value: len(corr)}
	}
	for i, m := range models {
		if m.RandomsPerStep() != 1 {
			return nil, qerrors.ConfigError{Kind: "MissingParameter", Field: "models[i].RandomsPerStep", Value: i}
		}
		if len(corr[i]) != n {
			return nil, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "corr row", Value: i}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if corr[i][j] != corr[j][i] {
				return nil, qerrors.ModelError{Kind: "NumericalInstability", Field: "corr", Value: "not symmetric"}
			}
		}
	}

	flat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		copy(flat[i*n:(i+1)*n], corr[i])
	}
	sym := mat.NewSymDense(n, flat)

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, qerrors.ModelError{Kind: "NumericalInstability", Field: "corr", Value: "not positive-definite"}
	}
	var lDense mat.TriDense
	chol.LTo(&lDense)

	l := make([][]float64, n)
	for i := 0; i < n; i++ {
		l[i] = make([]float64, i+1)
		for j := 0; j <= i; j++ {
			l[i][j] = lDense.At(i, j)
		}
	}
	return &Correlated[F]{models: models, l: l}, nil
}

func (c *Correlated[F]) Dimension() int {
	total := 0
	for _, m := range c.models {
		total += m.Dimension()
	}
	return total
}

func (c *Correlated[F]) RandomsPerStep() int { return len(c.models) }

func (c *Correlated[F]) InitialState() []F {
	var state []F
	for _, m := range c.models {
		state = append(state, m.InitialState()...)
	}
	return state
}

func (c *Correlated[F]) EvolveStep(state []F, dt float64, randoms []F) []F {
	n := len(c.models)
	correlated := make([]F, n)
	for i := 0; i < n; i++ {
		acc := numeric.MulC(randoms[i], c.l[i][i])
		for j := 0; j < i; j++ {
			if c.l[i][j] == 0 {
				continue
			}
			acc = acc.Add(numeric.MulC(randoms[j], c.l[i][j]))
		}
		correlated[i] = acc
	}

	var next []F
	offset := 0
	for i, m := range c.models {
		dim := m.Dimension()
		sub := m.EvolveStep(state[offset:offset+dim], dt, correlated[i:i+1])
		next = append(next, sub...)
		offset += dim
	}
	return next
}
