package curve

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
)

// QuoteKind distinguishes the instrument a bootstrap quote represents,
// since deposits admit a well-behaved analytic derivative (Newton is
// used) while swaps generally do not (Brent is used instead).
type QuoteKind int

const (
	Deposit QuoteKind = iota
	Swap
)

// Quote is one market instrument used to bootstrap a curve: a maturity in
// years and the par rate observed for it.
type Quote struct {
	Maturity float64
	Rate     float64
	Kind     QuoteKind
}

// Bootstrap builds an interpolated curve by solving, for each quote in
// ascending maturity order, the single additional discount factor that
// reprices that quote exactly given all earlier pillars. Deposits use
// Newton's method (their price is a simple, well-behaved function of the
// unknown discount factor); swaps use Brent's method inside a safe
// bracket, since the annuity sum over all prior pillars can make the
// derivative ill-conditioned.
func Bootstrap(settlementT float64, quotes []Quote, interp Interpolation) (*Curve[numeric.F64], error) {
	if len(quotes) == 0 {
		return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "quotes", Value: 0}
	}
	sorted := append([]Quote(nil), quotes...)
	insertionSortByMaturity(sorted)

	pillars := []float64{0}
	dfs := []numeric.F64{1}

	for _, q := range sorted {
		if q.Maturity <= pillars[len(pillars)-1] {
			return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "Maturity", Value: q.Maturity}
		}
		priorPillars := append([]float64(nil), pillars...)
		priorDFs := append([]numeric.F64(nil), dfs...)

		price := func(dfCandidate float64) float64 {
			trial, err := New(append(priorPillars, q.Maturity), append(priorDFs, numeric.F64(dfCandidate)), interp)
			if err != nil {
				return math.NaN()
			}
			return quotePricingError(trial, q)
		}

		var df float64
		var err error
		switch q.Kind {
		case Deposit:
			df, err = newtonSolveDF(price, q)
		default:
			df, err = brentSolveDF(price, q, float64(priorDFs[len(priorDFs)-1]))
		}
		if err != nil {
			return nil, err
		}
		pillars = append(pillars, q.Maturity)
		dfs = append(dfs, numeric.F64(df))
	}

	return New(pillars, dfs, interp)
}

// quotePricingError returns par_rate_implied_by(trial) - quote.Rate: the
// residual the solver drives to zero. For a deposit this is the simple
// compounding residual; for a swap it is the par-rate residual against
// the (already-built) curve's own discount factors as the floating-leg
// proxy, matching a single-curve OIS-style bootstrap.
func quotePricingError(c *Curve[numeric.F64], q Quote) float64 {
	d := float64(c.D(q.Maturity))
	switch q.Kind {
	case Deposit:
		// 1 = D(T) * (1 + rate*T)  =>  residual = D(T)*(1+rate*T) - 1
		return d*(1+q.Rate*q.Maturity) - 1
	default:
		// Par swap residual: rate * annuity - (1 - D(T)) = 0, with the
		// annuity approximated on the running curve's own pillar grid
		// (single-curve bootstrap, fixed-leg accruing annually).
		annuity := 0.0
		for t := 1.0; t <= q.Maturity+1e-9; t += 1.0 {
			annuity += float64(c.D(t))
		}
		return q.Rate*annuity - (1 - d)
	}
}

func newtonSolveDF(price func(float64) float64, q Quote) (float64, error) {
	df := 1.0 / (1 + q.Rate*q.Maturity)
	for i := 0; i < 50; i++ {
		f := price(df)
		if math.Abs(f) < 1e-12 {
			return df, nil
		}
		h := 1e-7
		fPrime := (price(df+h) - price(df-h)) / (2 * h)
		if fPrime == 0 || math.IsNaN(fPrime) {
			break
		}
		next := df - f/fPrime
		if math.IsNaN(next) || next <= 0 {
			break
		}
		df = next
	}
	if math.IsNaN(price(df)) || math.Abs(price(df)) > 1e-6 {
		return 0, qerrors.MarketDataError{Kind: "BootstrapNoBracket", Field: "Maturity", Value: q.Maturity}
	}
	return df, nil
}

// brentSolveDF brackets the root in [lo, hi], with hi the previous
// pillar's discount factor (New rejects any larger candidate as
// arbitrage, so a bracket above it would price to NaN), then runs Brent's
// method (bisection with inverse-quadratic/secant acceleration).
func brentSolveDF(price func(float64) float64, q Quote, hi float64) (float64, error) {
	lo := 1e-6
	flo, fhi := price(lo), price(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		return 0, qerrors.MarketDataError{Kind: "BootstrapNoBracket", Field: "Maturity", Value: q.Maturity}
	}

	a, b := lo, hi
	fa, fb := flo, fhi
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	var d float64
	mflag := true

	for i := 0; i < 200; i++ {
		if math.Abs(fb) < 1e-12 || math.Abs(b-a) < 1e-14 {
			return b, nil
		}
		var s float64
		if fa != fc && fb != fc {
			s = a*fb*fc/((fa-fb)*(fa-fc)) + b*fa*fc/((fb-fa)*(fb-fc)) + c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}
		cond := s < (3*a+b)/4 || s > b
		if cond ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}
		fs := price(s)
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	if math.Abs(fb) > 1e-6 {
		return 0, qerrors.MarketDataError{Kind: "BootstrapNoBracket", Field: "Maturity", Value: q.Maturity}
	}
	return b, nil
}

func insertionSortByMaturity(qs []Quote) {
	for i := 1; i < len(qs); i++ {
		for j := i; j > 0 && qs[j].Maturity < qs[j-1].Maturity; j-- {
			qs[j], qs[j-1] = qs[j-1], qs[j]
		}
	}
}
