package curve

import (
	"sort"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
)

// Interpolation selects how a Curve fills in discount factors between
// pillars.
type Interpolation int

const (
	// LinearOnRates interpolates the zero rate r(t) = -ln(D(t))/t linearly
	// between pillars, then reconstitutes D(t) = exp(-r(t)*t).
	LinearOnRates Interpolation = iota
	// LinearOnLogDiscount interpolates ln(D(t)) linearly in t.
	LinearOnLogDiscount
	// CubicSpline fits a natural cubic spline through ln(D(t)) at the
	// pillars and evaluates it at arbitrary t.
	CubicSpline
)

// Curve is an immutable discount curve: a strictly increasing sequence of
// pillar maturities with associated discount factors, plus the
// interpolation rule used between them. It is generic over the scalar
// realization F so that a curve bootstrapped (or bumped) with F=Dual
// yields rate/discount-factor sensitivities through the same formulas used
// for plain valuation.
type Curve[F numeric.Number[F]] struct {
	pillars []float64 // years from settlement, strictly increasing, pillars[0] == 0
	dfs     []F        // discount factors, dfs[0] == 1
	interp  Interpolation
	flat    bool
	flatR   F // only meaningful when flat

	logDF      []F // cached ln(dfs[i]), used by log-linear and spline
	splineM    []F // second derivatives of the log-discount spline at each pillar
}

// Flat builds a curve that returns exp(-r*t) for every maturity: the
// closed-form short-circuit mentioned in the component design — no pillar
// search, no interpolation weights.
func Flat[F numeric.Number[F]](rate F) *Curve[F] {
	return &Curve[F]{flat: true, flatR: rate}
}

// New builds an interpolated curve from explicit pillars and discount
// factors. pillars must start at 0 with dfs[0] == 1 (within tolerance),
// be strictly increasing thereafter, and dfs must be positive and
// non-increasing (no-arbitrage). Violations return a qerrors.MarketDataError
// rather than panicking or silently continuing.
func New[F numeric.Number[F]](pillars []float64, dfs []F, interp Interpolation) (*Curve[F], error) {
	if len(pillars) != len(dfs) {
		return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "len(pillars)!=len(dfs)", Value: len(pillars)}
	}
	if len(pillars) < 2 {
		return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "pillars", Value: len(pillars)}
	}
	if pillars[0] != 0 {
		return nil, qerrors.MarketDataError{Kind: "Arbitrage", Field: "pillars[0]", Value: pillars[0]}
	}
	if d0 := dfs[0].Value(); d0 < 1-1e-9 || d0 > 1+1e-9 {
		return nil, qerrors.MarketDataError{Kind: "Arbitrage", Field: "dfs[0]", Value: d0}
	}
	for i := 1; i < len(pillars); i++ {
		if pillars[i] <= pillars[i-1] {
			return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "pillars", Value: pillars}
		}
		if dfs[i].Value() <= 0 {
			return nil, qerrors.MarketDataError{Kind: "Arbitrage", Field: "dfs", Value: dfs[i].Value()}
		}
		if dfs[i].Value() > dfs[i-1].Value()+1e-12 {
			return nil, qerrors.MarketDataError{Kind: "Arbitrage", Field: "dfs", Value: dfs[i].Value()}
		}
	}

	c := &Curve[F]{
		pillars: append([]float64(nil), pillars...),
		dfs:     append([]F(nil), dfs...),
		interp:  interp,
	}
	c.logDF = make([]F, len(dfs))
	for i, d := range dfs {
		c.logDF[i] = d.Log()
	}
	if interp == CubicSpline {
		c.splineM = naturalSplineSecondDerivatives(c.pillars, c.logDF)
	}
	return c, nil
}

// D returns the discount factor at maturity t (years from settlement).
// t == 0 returns exactly 1 for an interpolated curve, and exp(0) == 1 for
// a flat one.
func (c *Curve[F]) D(t float64) F {
	if c.flat {
		var zero F
		return zero.New(-t).Mul(c.flatR).Exp()
	}
	if t <= 0 {
		return c.dfs[0]
	}
	if t >= c.pillars[len(c.pillars)-1] {
		return c.extrapolateFlat(t)
	}
	i := c.bracket(t)
	return c.interpolate(t, i)
}

// R returns the continuously compounded zero rate r(t) = -ln(D(t))/t.
func (c *Curve[F]) R(t float64) F {
	d := c.D(t)
	if t == 0 {
		// Limit of -ln(D(t))/t as t->0 is the instantaneous short rate;
		// approximate it from a tiny forward step rather than divide by 0.
		t = 1e-8
		d = c.D(t)
	}
	var zero F
	return d.Log().Neg().Div(zero.New(t))
}

// F returns the continuously compounded forward rate between t1 and t2:
// f(t1,t2) = -ln(D(t2)/D(t1)) / (t2-t1).
func (c *Curve[F]) F(t1, t2 float64) F {
	d1 := c.D(t1)
	d2 := c.D(t2)
	var zero F
	return d2.Div(d1).Log().Neg().Div(zero.New(t2 - t1))
}

// bracket returns the index i such that pillars[i] <= t < pillars[i+1].
func (c *Curve[F]) bracket(t float64) int {
	i := sort.Search(len(c.pillars), func(i int) bool { return c.pillars[i] > t })
	if i == 0 {
		return 0
	}
	return i - 1
}

func (c *Curve[F]) interpolate(t float64, i int) F {
	t0, t1 := c.pillars[i], c.pillars[i+1]
	w := (t - t0) / (t1 - t0)
	var zero F
	wF := zero.New(w)
	oneMinusW := zero.New(1 - w)

	switch c.interp {
	case LinearOnLogDiscount:
		lg := oneMinusW.Mul(c.logDF[i]).Add(wF.Mul(c.logDF[i+1]))
		return lg.Exp()
	case CubicSpline:
		return c.splineEval(t, i).Exp()
	default: // LinearOnRates
		r0 := c.logDF[i].Neg().Div(zero.New(maxf(t0, 1e-8)))
		r1 := c.logDF[i+1].Neg().Div(zero.New(t1))
		r := oneMinusW.Mul(r0).Add(wF.Mul(r1))
		return r.Neg().Mul(zero.New(t)).Exp()
	}
}

// extrapolateFlat holds the final zero rate constant beyond the last
// pillar: out-of-grid queries saturate rather than risk extrapolated
// discount factors crossing into arbitrage or NaN territory.
func (c *Curve[F]) extrapolateFlat(t float64) F {
	last := len(c.pillars) - 1
	r := c.logDF[last].Neg().Div(c.logDF[last].New(c.pillars[last]))
	return r.Neg().Mul(r.New(t)).Exp()
}

func (c *Curve[F]) splineEval(t float64, i int) F {
	t0, t1 := c.pillars[i], c.pillars[i+1]
	h := t1 - t0
	a := (t1 - t) / h
	b := (t - t0) / h
	var zero F
	aF, bF, hF := zero.New(a), zero.New(b), zero.New(h)

	term1 := aF.Mul(c.logDF[i])
	term2 := bF.Mul(c.logDF[i+1])
	term3 := aF.Mul(aF).Mul(aF).Sub(aF).Mul(c.splineM[i]).Mul(hF).Mul(hF).Div(zero.New(6))
	term4 := bF.Mul(bF).Mul(bF).Sub(bF).Mul(c.splineM[i+1]).Mul(hF).Mul(hF).Div(zero.New(6))
	return term1.Add(term2).Add(term3).Add(term4)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// naturalSplineSecondDerivatives solves the natural cubic spline's
// tridiagonal system with the Thomas algorithm, written against Number[F]
// so that when F carries a tangent (bumped discount factors under
// forward-mode AD) the second derivatives — and everything evaluated from
// them — carry the correct sensitivity too.
func naturalSplineSecondDerivatives[F numeric.Number[F]](x []float64, y []F) []F {
	n := len(x)
	m := make([]F, n) // natural boundary: m[0] = m[n-1] = 0
	if n < 3 {
		return m
	}
	var zero F
	alpha := make([]F, n)
	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]F, n)

	l[0] = 1
	for i := 1; i < n-1; i++ {
		him1 := x[i] - x[i-1]
		hi := x[i+1] - x[i]
		alpha[i] = zero.New(6.0/hi).Mul(y[i+1].Sub(y[i])).Sub(zero.New(6.0 / him1).Mul(y[i].Sub(y[i-1])))
		l[i] = 2*(x[i+1]-x[i-1]) - him1*mu[i-1]
		mu[i] = hi / l[i]
		z[i] = alpha[i].Sub(zero.New(him1).Mul(z[i-1])).Div(zero.New(l[i]))
	}
	l[n-1] = 1
	for j := n - 2; j >= 0; j-- {
		m[j] = z[j].Sub(zero.New(mu[j]).Mul(m[j+1]))
	}
	return m
}
