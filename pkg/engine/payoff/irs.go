package payoff

import (
	"github.com/aristath/quantrisk/pkg/curve"
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// IRS prices a fixed-for-floating swap directly off the discount and
// forward curves, the way a desk prices a linear-rates product: no path
// simulation is needed, so Evaluate ignores its observer argument and
// returns the same analytic PV on every call. It still implements Payoff
// so the engine's single price() entrypoint handles every trade variant
// uniformly (spec.md §4.4.3's "unified trait").
type IRS[F numeric.Number[F]] struct {
	Trade          trade.IRS
	DiscountCurve  *curve.Curve[F]
	ForwardCurve   *curve.Curve[F]
}

func (p IRS[F]) Evaluate(_ *observer.PathObserver[F]) F {
	var zero F
	pv := zero.New(0)
	fixedRate := zero.New(p.Trade.FixedRate)

	t := 0.0
	for _, period := range p.Trade.Schedule.Periods {
		t1 := t + period.YearFraction
		forward := p.ForwardCurve.F(t, t1)
		yearFraction := zero.New(period.YearFraction)
		discountFactor := p.DiscountCurve.D(t1)

		cashflow := forward.Sub(fixedRate).Mul(yearFraction).Mul(discountFactor)
		if !p.Trade.PayFixed {
			cashflow = cashflow.Neg()
		}
		pv = pv.Add(cashflow)
		t = t1
	}
	return pv
}

// Requires nothing: Evaluate ignores its observer argument entirely.
func (p IRS[F]) Requires() observer.Requirements { return observer.Requirements{} }
