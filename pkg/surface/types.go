package surface

import (
	"sort"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
)

// Kind distinguishes how the grid's first axis is quoted.
type Kind int

const (
	StrikeExpiry Kind = iota
	DeltaExpiry
)

// Surface is an immutable implied-volatility surface. A flat surface
// returns a constant sigma for any (strikeOrDelta, expiry); a grid surface
// bilinearly interpolates a regular rectangular grid, saturating to the
// nearest boundary outside the declared domain (deliberately, to keep NaN
// out of downstream Monte-Carlo paths).
type Surface[F numeric.Number[F]] struct {
	flat     bool
	flatSig  F
	kind     Kind
	xs       []float64 // strikes or deltas, strictly increasing
	expiries []float64 // strictly increasing
	grid     [][]F     // grid[i][j] = sigma(xs[i], expiries[j])
}

// Flat builds a constant-volatility surface.
func Flat[F numeric.Number[F]](sigma F) *Surface[F] {
	return &Surface[F]{flat: true, flatSig: sigma}
}

// NewGrid builds a bilinear surface from a regular (xs x expiries) grid of
// volatilities. All volatilities must be strictly positive.
func NewGrid[F numeric.Number[F]](kind Kind, xs, expiries []float64, grid [][]F) (*Surface[F], error) {
	if len(xs) == 0 || len(expiries) == 0 {
		return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "grid", Value: 0}
	}
	if len(grid) != len(xs) {
		return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "len(grid)", Value: len(grid)}
	}
	for i := range xs {
		if len(grid[i]) != len(expiries) {
			return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "grid row length", Value: len(grid[i])}
		}
		for j := range expiries {
			if grid[i][j].Value() <= 0 {
				return nil, qerrors.MarketDataError{Kind: "OutOfBounds", Field: "sigma", Value: grid[i][j].Value()}
			}
		}
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "xs", Value: xs}
		}
	}
	for j := 1; j < len(expiries); j++ {
		if expiries[j] <= expiries[j-1] {
			return nil, qerrors.MarketDataError{Kind: "InsufficientPillars", Field: "expiries", Value: expiries}
		}
	}
	return &Surface[F]{
		kind:     kind,
		xs:       append([]float64(nil), xs...),
		expiries: append([]float64(nil), expiries...),
		grid:     grid,
	}, nil
}

// Sigma returns the implied volatility at (strikeOrDelta, expiry).
func (s *Surface[F]) Sigma(x, expiry float64) F {
	if s.flat {
		return s.flatSig
	}
	x = clamp(x, s.xs[0], s.xs[len(s.xs)-1])
	expiry = clamp(expiry, s.expiries[0], s.expiries[len(s.expiries)-1])

	i := bracket(s.xs, x)
	j := bracket(s.expiries, expiry)

	x0, x1 := s.xs[i], s.xs[i+1]
	e0, e1 := s.expiries[j], s.expiries[j+1]

	wx := 0.0
	if x1 > x0 {
		wx = (x - x0) / (x1 - x0)
	}
	we := 0.0
	if e1 > e0 {
		we = (expiry - e0) / (e1 - e0)
	}

	v00, v01 := s.grid[i][j], s.grid[i][j+1]
	v10, v11 := s.grid[i+1][j], s.grid[i+1][j+1]

	var zero F
	wxF, wxC := zero.New(wx), zero.New(1-wx)
	weF, weC := zero.New(we), zero.New(1-we)

	top := wxC.Mul(v00).Add(wxF.Mul(v10))
	bot := wxC.Mul(v01).Add(wxF.Mul(v11))
	return weC.Mul(top).Add(weF.Mul(bot))
}

func bracket(xs []float64, v float64) int {
	if len(xs) == 1 {
		return 0
	}
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > v })
	if i == 0 {
		return 0
	}
	if i >= len(xs) {
		return len(xs) - 2
	}
	return i - 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
