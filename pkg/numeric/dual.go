package numeric

import "math"

// Dual is the forward-mode differentiable realization of Number. It
// carries a primal value and a tangent (the derivative of the primal with
// respect to whichever single input the caller seeded with tangent=1).
// Re-instantiating any Number[F]-generic formula with F=Dual computes the
// formula's value and its derivative in the same pass, at a constant
// factor of ~2x the cost of the plain F64 path — this is spec's "forward
// mode for free" contract.
type Dual struct {
	Primal  float64
	Tangent float64
}

// Constant returns a Dual with zero tangent: an input that does not carry
// a derivative with respect to the active seed (e.g. a fixed day-count
// fraction, or a parameter other than the one Delta/Vega/Rho is being
// taken against).
func Constant(primal float64) Dual { return Dual{Primal: primal} }

// Seed returns a Dual with unit tangent: the input the derivative is being
// taken with respect to (spot for Delta, sigma for Vega, and so on).
func Seed(primal float64) Dual { return Dual{Primal: primal, Tangent: 1} }

func (a Dual) Add(b Dual) Dual {
	return Dual{a.Primal + b.Primal, a.Tangent + b.Tangent}
}

func (a Dual) Sub(b Dual) Dual {
	return Dual{a.Primal - b.Primal, a.Tangent - b.Tangent}
}

func (a Dual) Mul(b Dual) Dual {
	return Dual{
		Primal:  a.Primal * b.Primal,
		Tangent: a.Tangent*b.Primal + a.Primal*b.Tangent,
	}
}

func (a Dual) Div(b Dual) Dual {
	return Dual{
		Primal:  a.Primal / b.Primal,
		Tangent: (a.Tangent*b.Primal - a.Primal*b.Tangent) / (b.Primal * b.Primal),
	}
}

func (a Dual) Neg() Dual { return Dual{-a.Primal, -a.Tangent} }

func (a Dual) Exp() Dual {
	e := math.Exp(a.Primal)
	return Dual{e, a.Tangent * e}
}

func (a Dual) Log() Dual {
	return Dual{math.Log(a.Primal), a.Tangent / a.Primal}
}

func (a Dual) Sqrt() Dual {
	s := math.Sqrt(a.Primal)
	return Dual{s, a.Tangent / (2 * s)}
}

func (a Dual) Sin() Dual {
	return Dual{math.Sin(a.Primal), a.Tangent * math.Cos(a.Primal)}
}

func (a Dual) Cos() Dual {
	return Dual{math.Cos(a.Primal), -a.Tangent * math.Sin(a.Primal)}
}

// Pow implements a^b for a constant exponent b (b.Tangent is ignored,
// matching the spec's activity analysis: exponents here are always
// integer/constant powers such as squaring a volatility, never an active
// market parameter in its own right).
func (a Dual) Pow(b Dual) Dual {
	p := math.Pow(a.Primal, b.Primal)
	if a.Primal == 0 {
		return Dual{p, 0}
	}
	return Dual{p, b.Primal * math.Pow(a.Primal, b.Primal-1) * a.Tangent}
}

func (a Dual) New(v float64) Dual { return Dual{Primal: v} }
func (a Dual) Value() float64     { return a.Primal }
