package stochastic

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
)

// GBM is 1-factor geometric Brownian motion: dS = S(r-q)dt + S*sigma*dW,
// stepped with the exact log-space update spec.md §4.4.1 prescribes
// (S <- S*exp((r-q-sigma^2/2)dt + sigma*sqrt(dt)*Z)) rather than Euler, so
// there is no discretization bias at arbitrary dt.
type GBM[F numeric.Number[F]] struct {
	S0, Rate, Dividend, Sigma F
}

func (GBM[F]) Dimension() int      { return 1 }
func (GBM[F]) RandomsPerStep() int { return 1 }

func (m GBM[F]) InitialState() []F { return []F{m.S0} }

func (m GBM[F]) EvolveStep(state []F, dt float64, randoms []F) []F {
	s := state[0]
	half := s.New(0.5)
	dtF := s.New(dt)
	sqrtDt := s.New(math.Sqrt(dt))

	variance := m.Sigma.Mul(m.Sigma)
	drift := m.Rate.Sub(m.Dividend).Sub(half.Mul(variance)).Mul(dtF)
	diffusion := m.Sigma.Mul(sqrtDt).Mul(randoms[0])
	next := s.Mul(drift.Add(diffusion).Exp())
	return []F{next}
}
