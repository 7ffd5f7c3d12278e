package payoff

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// Barrier scales a vanilla payoff on the terminal value by a smoothed
// knock indicator read from the observer's running max (Up direction,
// spec.md §4.4.3's "Barrier (up) | running max, terminal") or running min
// (Down direction, "Barrier (down) | running min, terminal").
type Barrier[F numeric.Number[F]] struct {
	Type      trade.OptionType
	Strike    F
	Level     F
	Kind      trade.BarrierType
	Direction trade.BarrierDirection
	Epsilon   F
}

func (p Barrier[F]) Evaluate(obs *observer.PathObserver[F]) F {
	vanilla := vanillaPayoff(p.Type, obs.Terminal(), p.Strike, p.Epsilon)

	var breached F
	if p.Direction == trade.Up {
		breached = numeric.SmoothIndicator(obs.Max().Sub(p.Level), p.Epsilon)
	} else {
		breached = numeric.SmoothIndicator(p.Level.Sub(obs.Min()), p.Epsilon)
	}

	if p.Kind == trade.KnockIn {
		return vanilla.Mul(breached)
	}
	survived := breached.New(1).Sub(breached)
	return vanilla.Mul(survived)
}

// Requires declares the running max for an up barrier or the running min
// for a down one, matching whichever Evaluate actually reads.
func (p Barrier[F]) Requires() observer.Requirements {
	if p.Direction == trade.Up {
		return observer.Requirements{Max: true}
	}
	return observer.Requirements{Min: true}
}
