package payoff

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// Vanilla reads only the observer's terminal value, per spec.md §4.4.3's
// "Vanilla European | terminal" row.
type Vanilla[F numeric.Number[F]] struct {
	Type    trade.OptionType
	Strike  F
	Epsilon F
}

func (p Vanilla[F]) Evaluate(obs *observer.PathObserver[F]) F {
	return vanillaPayoff(p.Type, obs.Terminal(), p.Strike, p.Epsilon)
}

// Requires reads only the terminal value, which the observer always
// tracks regardless of Requirements.
func (p Vanilla[F]) Requires() observer.Requirements { return observer.Requirements{} }

// vanillaPayoff is shared by Vanilla and Asian (which apply it to the
// running average instead of the terminal value).
func vanillaPayoff[F numeric.Number[F]](typ trade.OptionType, underlying, strike, epsilon F) F {
	switch typ {
	case trade.Call:
		return numeric.SmoothMax(underlying.Sub(strike), underlying.New(0), epsilon)
	case trade.Put:
		return numeric.SmoothMax(strike.Sub(underlying), underlying.New(0), epsilon)
	default: // Digital: pays 1 unit of notional if underlying finishes above strike
		return numeric.SmoothIndicator(underlying.Sub(strike), epsilon)
	}
}
