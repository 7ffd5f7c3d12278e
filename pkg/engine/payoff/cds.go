package payoff

import (
	"math"

	"github.com/aristath/quantrisk/pkg/curve"
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/trade"
)

// CDS prices a single-name credit default swap analytically under the
// flat hazard-rate survival curve Q(t) = exp(-HazardRate*t) spec.md §3
// names, discounted with DiscountCurve. Like IRS, it needs no path
// simulation and ignores its observer argument.
type CDS[F numeric.Number[F]] struct {
	Trade         trade.CDS
	DiscountCurve *curve.Curve[F]
}

func (p CDS[F]) Evaluate(_ *observer.PathObserver[F]) F {
	var zero F
	premiumLeg := zero.New(0)
	protectionLeg := zero.New(0)
	lossGivenDefault := zero.New(1 - p.Trade.RecoveryRate)

	t := 0.0
	prevSurvival := survivalProbability(p.Trade.HazardRate, t)
	for _, period := range p.Trade.Schedule.Periods {
		t1 := t + period.YearFraction
		survival := survivalProbability(p.Trade.HazardRate, t1)

		discountFactor := p.DiscountCurve.D(t1)
		yearFraction := zero.New(period.YearFraction)
		spread := zero.New(p.Trade.Spread)
		survivalF := zero.New(survival)
		premiumLeg = premiumLeg.Add(spread.Mul(yearFraction).Mul(survivalF).Mul(discountFactor))

		defaultProb := zero.New(prevSurvival - survival)
		protectionLeg = protectionLeg.Add(lossGivenDefault.Mul(defaultProb).Mul(discountFactor))

		prevSurvival = survival
		t = t1
	}
	return protectionLeg.Sub(premiumLeg)
}

// Requires nothing: Evaluate ignores its observer argument entirely.
func (p CDS[F]) Requires() observer.Requirements { return observer.Requirements{} }

func survivalProbability(hazardRate, t float64) float64 {
	return math.Exp(-hazardRate * t)
}
