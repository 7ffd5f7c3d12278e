package payoff

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// Asian applies the vanilla strike comparison to the observer's running
// average instead of its terminal value, per spec.md §4.4.3's "Asian
// arithmetic | running sum, count" / "Asian geometric | running log-sum,
// count" rows.
type Asian[F numeric.Number[F]] struct {
	Type    trade.OptionType
	Strike  F
	AvgType trade.AverageType
	Epsilon F
}

func (p Asian[F]) Evaluate(obs *observer.PathObserver[F]) F {
	var avg F
	if p.AvgType == trade.Geometric {
		avg = obs.GeometricMean()
	} else {
		avg = obs.ArithmeticMean()
	}
	return vanillaPayoff(p.Type, avg, p.Strike, p.Epsilon)
}

// Requires declares the running log-sum for a geometric average or the
// running sum for an arithmetic one; count is always tracked.
func (p Asian[F]) Requires() observer.Requirements {
	if p.AvgType == trade.Geometric {
		return observer.Requirements{LogSum: true}
	}
	return observer.Requirements{Sum: true}
}
