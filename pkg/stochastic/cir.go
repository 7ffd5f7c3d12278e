package stochastic

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
)

// CIR is the Cox-Ingersoll-Ross model dr = a(b-r)dt + sigma*sqrt(r)*dW,
// stepped with Euler-Maruyama and a smoothed floor at zero
// (numeric.SmoothMax(x, 0, eps) in place of a hard max(x,0)), applied both
// to the rate fed to sqrt and to the stepped rate, so sqrt stays defined
// and differentiable and the discretized path never goes negative.
type CIR[F numeric.Number[F]] struct {
	R0, MeanReversionSpeed, LongRunLevel, Sigma, Epsilon F
}

func (CIR[F]) Dimension() int      { return 1 }
func (CIR[F]) RandomsPerStep() int { return 1 }

func (m CIR[F]) InitialState() []F { return []F{m.R0} }

func (m CIR[F]) EvolveStep(state []F, dt float64, randoms []F) []F {
	r := state[0]
	zero := r.New(0)
	dtF := r.New(dt)
	sqrtDt := r.New(math.Sqrt(dt))

	rFloored := numeric.SmoothMax(r, zero, m.Epsilon)
	meanReversion := m.MeanReversionSpeed.Mul(m.LongRunLevel.Sub(r)).Mul(dtF)
	diffusion := m.Sigma.Mul(rFloored.Sqrt()).Mul(sqrtDt).Mul(randoms[0])
	next := r.Add(meanReversion).Add(diffusion)
	return []F{numeric.SmoothMax(next, zero, m.Epsilon)}
}
