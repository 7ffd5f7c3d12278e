package payoff

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// Lookback reads the observer's running max and min, per spec.md §4.4.3's
// "Lookback | running max and min, terminal" row: a lookback call pays
// terminal - running min, a lookback put pays running max - terminal.
type Lookback[F numeric.Number[F]] struct {
	Type trade.OptionType
}

func (p Lookback[F]) Evaluate(obs *observer.PathObserver[F]) F {
	if p.Type == trade.Put {
		return obs.Max().Sub(obs.Terminal())
	}
	return obs.Terminal().Sub(obs.Min())
}

// Requires both the running max and min: a put reads Max, a call reads
// Min, and declaring both lets the same Workspace serve either Type
// without re-inspecting p.Type at observer-construction time.
func (p Lookback[F]) Requires() observer.Requirements {
	return observer.Requirements{Max: true, Min: true}
}
