package surface

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SmileQuote is one market implied-volatility observation used by
// CalibrateSABRGrid: a strike and its quoted volatility for a given
// expiry slice.
type SmileQuote struct {
	Strike float64
	Vol    float64
}

// SABRParams are the Hagan et al. SABR model parameters for one expiry
// slice: Alpha (initial vol level), Beta (CEV exponent, held fixed per
// calibration convention), Rho (spot-vol correlation), Nu (vol-of-vol).
type SABRParams struct {
	Alpha, Beta, Rho, Nu float64
}

// CalibrateSABRGrid calibrates one SABR parameter set per expiry slice via
// Levenberg-Marquardt against the supplied smile quotes, then bakes the
// resulting implied vols onto a regular (strike x expiry) grid Surface.
// forward[i] is the forward price used by slice i's SABR formula.
func CalibrateSABRGrid(expiries []float64, forwards []float64, beta float64, quotesPerExpiry [][]SmileQuote, strikesForGrid []float64) (*Surface[numeric.F64], []SABRParams, error) {
	if len(expiries) != len(quotesPerExpiry) || len(expiries) != len(forwards) {
		return nil, nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "expiries/quotesPerExpiry/forwards length mismatch", Value: len(expiries)}
	}

	params := make([]SABRParams, len(expiries))
	grid := make([][]numeric.F64, len(strikesForGrid))
	for i := range grid {
		grid[i] = make([]numeric.F64, len(expiries))
	}

	for e, quotes := range quotesPerExpiry {
		if len(quotes) < 3 {
			return nil, nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "quotesPerExpiry", Value: len(quotes)}
		}
		p, err := calibrateSABRSlice(expiries[e], forwards[e], beta, quotes)
		if err != nil {
			return nil, nil, err
		}
		params[e] = p
		for i, k := range strikesForGrid {
			grid[i][e] = numeric.F64(sabrImpliedVol(forwards[e], k, expiries[e], p))
		}
	}

	return NewGrid[numeric.F64](StrikeExpiry, strikesForGrid, expiries, grid)
}

// calibrateSABRSlice fits (Alpha, Rho, Nu) for a fixed Beta via
// Levenberg-Marquardt, minimizing the sum of squared vol residuals. This
// mirrors the teacher's own use of gonum/mat to assemble and solve a
// linear system inside an iterative optimization routine
// (internal/modules/optimization/mv_optimizer.go), specialized here to the
// classic LM damped Gauss-Newton update rather than a portfolio QP.
func calibrateSABRSlice(expiry, forward, beta float64, quotes []SmileQuote) (SABRParams, error) {
	// x = [alpha, rho, nu]; start from a conservative ATM-anchored guess.
	atmVol := quotes[0].Vol
	for _, q := range quotes {
		if math.Abs(q.Strike-forward) < math.Abs(quotes[0].Strike-forward) {
			atmVol = q.Vol
		}
	}
	x := []float64{atmVol * math.Pow(forward, 1-beta), 0, 0.3}

	residual := func(x []float64) []float64 {
		p := SABRParams{Alpha: x[0], Beta: beta, Rho: clampRho(x[1]), Nu: math.Max(x[2], 1e-4)}
		r := make([]float64, len(quotes))
		for i, q := range quotes {
			r[i] = sabrImpliedVol(forward, q.Strike, expiry, p) - q.Vol
		}
		return r
	}

	xStar, err := levenbergMarquardt(x, residual, 100, 1e-10)
	if err != nil {
		return SABRParams{}, qerrors.MarketDataError{Kind: "BootstrapNoBracket", Field: "SABR calibration", Value: expiry}
	}
	return SABRParams{Alpha: math.Max(xStar[0], 1e-6), Beta: beta, Rho: clampRho(xStar[1]), Nu: math.Max(xStar[2], 1e-4)}, nil
}

func clampRho(rho float64) float64 {
	if rho > 0.999 {
		return 0.999
	}
	if rho < -0.999 {
		return -0.999
	}
	return rho
}

// levenbergMarquardt minimizes sum(residual(x)^2) by the damped
// Gauss-Newton update J'J+lambda*diag(J'J) applied to a finite-difference
// Jacobian, solved via gonum/mat (the same library the teacher's
// optimizer reaches for whenever it needs to assemble and solve a linear
// system). Calibration runs once per cache miss, outside the
// AD-differentiated pricing path, so plain float64 arithmetic is the
// right tool here (see DESIGN.md).
func levenbergMarquardt(x0 []float64, residual func([]float64) []float64, maxIter int, tol float64) ([]float64, error) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	lambda := 1e-3

	cost := func(x []float64) float64 {
		r := residual(x)
		return floats.Dot(r, r)
	}

	prevCost := cost(x)
	for iter := 0; iter < maxIter; iter++ {
		r := residual(x)
		m := len(r)
		J := mat.NewDense(m, n, nil)
		h := 1e-6
		for j := 0; j < n; j++ {
			xp := append([]float64(nil), x...)
			xp[j] += h
			rp := residual(xp)
			for i := 0; i < m; i++ {
				J.Set(i, j, (rp[i]-r[i])/h)
			}
		}

		var JTJ mat.Dense
		JTJ.Mul(J.T(), J)
		var JTr mat.Dense
		rVec := mat.NewDense(m, 1, r)
		JTr.Mul(J.T(), rVec)

		damped := mat.NewDense(n, n, nil)
		damped.Copy(&JTJ)
		for i := 0; i < n; i++ {
			damped.Set(i, i, damped.At(i, i)*(1+lambda))
		}

		var delta mat.Dense
		if err := delta.Solve(damped, &JTr); err != nil {
			lambda *= 10
			continue
		}

		xTrial := make([]float64, n)
		for i := 0; i < n; i++ {
			xTrial[i] = x[i] - delta.At(i, 0)
		}
		newCost := cost(xTrial)
		if newCost < prevCost {
			x = xTrial
			if math.Abs(prevCost-newCost) < tol {
				return x, nil
			}
			prevCost = newCost
			lambda = math.Max(lambda/10, 1e-12)
		} else {
			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}
	}
	return x, nil
}

// sabrImpliedVol is Hagan et al.'s (2002) SABR log-normal implied
// volatility asymptotic approximation.
func sabrImpliedVol(f, k, t float64, p SABRParams) float64 {
	if math.Abs(f-k) < 1e-10 {
		// ATM formula.
		fBeta := math.Pow(f, 1-p.Beta)
		term1 := p.Alpha / fBeta
		term2 := 1 + (math.Pow(1-p.Beta, 2)/24*p.Alpha*p.Alpha/(fBeta*fBeta)+
			p.Rho*p.Beta*p.Nu*p.Alpha/(4*fBeta)+
			(2-3*p.Rho*p.Rho)*p.Nu*p.Nu/24)*t
		return term1 * term2
	}

	fk := math.Pow(f*k, (1-p.Beta)/2)
	logFK := math.Log(f / k)
	z := p.Nu / p.Alpha * fk * logFK
	x := math.Log((math.Sqrt(1-2*p.Rho*z+z*z) + z - p.Rho) / (1 - p.Rho))

	numerator := p.Alpha
	denominator := fk * (1 + math.Pow(1-p.Beta, 2)/24*logFK*logFK + math.Pow(1-p.Beta, 4)/1920*math.Pow(logFK, 4))
	mainTerm := numerator / denominator * z / x

	correction := 1 + (math.Pow(1-p.Beta, 2)/24*p.Alpha*p.Alpha/(fk*fk)+
		p.Rho*p.Beta*p.Nu*p.Alpha/(4*fk)+
		(2-3*p.Rho*p.Rho)*p.Nu*p.Nu/24)*t
	return mainTerm * correction
}
