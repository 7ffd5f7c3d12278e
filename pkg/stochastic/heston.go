package stochastic

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
)

// Heston is the stochastic-volatility model:
//
//	dS = S(r-q)dt + S*sqrt(v)*dW1
//	dv = kappa(theta-v)dt + xi*sqrt(v)*dW2
//	corr(dW1, dW2) = rho
//
// State is [S, v]. RandomsPerStep is 2; the two driving normals are
// correlated internally via rho rather than through the generic
// Correlated composition, since the correlation is a property of the
// model itself, not of a basket of independent models.
type Heston[F numeric.Number[F]] struct {
	S0, V0                     F
	Rate, Dividend             F
	Kappa, Theta, Xi, Rho      F
	Epsilon                    F // variance floor smoothing
}

func (Heston[F]) Dimension() int      { return 2 }
func (Heston[F]) RandomsPerStep() int { return 2 }

func (m Heston[F]) InitialState() []F { return []F{m.S0, m.V0} }

func (m Heston[F]) EvolveStep(state []F, dt float64, randoms []F) []F {
	s, v := state[0], state[1]
	zero := s.New(0)
	half := s.New(0.5)
	dtF := s.New(dt)
	sqrtDt := s.New(math.Sqrt(dt))
	one := s.New(1)

	vFloored := numeric.SmoothMax(v, zero, m.Epsilon)
	sqrtV := vFloored.Sqrt()

	z1 := randoms[0]
	z2 := randoms[1]
	// Correlate the volatility driver with the spot driver:
	// dW2 = rho*dW1 + sqrt(1-rho^2)*dW2_independent.
	rhoComplement := (one.Sub(m.Rho.Mul(m.Rho))).Sqrt()
	correlatedZ2 := m.Rho.Mul(z1).Add(rhoComplement.Mul(z2))

	driftS := m.Rate.Sub(m.Dividend).Sub(half.Mul(vFloored)).Mul(dtF)
	diffusionS := sqrtV.Mul(sqrtDt).Mul(z1)
	nextS := s.Mul(driftS.Add(diffusionS).Exp())

	driftV := m.Kappa.Mul(m.Theta.Sub(v)).Mul(dtF)
	diffusionV := m.Xi.Mul(sqrtV).Mul(sqrtDt).Mul(correlatedZ2)
	nextV := v.Add(driftV).Add(diffusionV)

	return []F{nextS, nextV}
}
