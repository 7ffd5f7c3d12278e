package stochastic

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
)

// HullWhite1F is the one-factor short-rate model dr = a(theta-r)dt +
// sigma dW, stepped with Euler-Maruyama per spec.md §4.4.1's "other models
// use Euler-Maruyama on the level as appropriate".
type HullWhite1F[F numeric.Number[F]] struct {
	R0, MeanReversionSpeed, LongRunLevel, Sigma F
}

func (HullWhite1F[F]) Dimension() int      { return 1 }
func (HullWhite1F[F]) RandomsPerStep() int { return 1 }

func (m HullWhite1F[F]) InitialState() []F { return []F{m.R0} }

func (m HullWhite1F[F]) EvolveStep(state []F, dt float64, randoms []F) []F {
	r := state[0]
	dtF := r.New(dt)
	sqrtDt := r.New(math.Sqrt(dt))

	meanReversion := m.MeanReversionSpeed.Mul(m.LongRunLevel.Sub(r)).Mul(dtF)
	diffusion := m.Sigma.Mul(sqrtDt).Mul(randoms[0])
	next := r.Add(meanReversion).Add(diffusion)
	return []F{next}
}
