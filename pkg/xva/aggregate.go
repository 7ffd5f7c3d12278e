package xva

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
)

// ComputeXVA aggregates portfolio's exposure profiles into CVA, DVA, FCA
// and FBA along opts.TimeGrid, bottom-up from netting set to counterparty
// to portfolio, per spec.md §4.5. Every profile and discount-factor slice
// must share opts.TimeGrid's length; before any arithmetic, a profile
// mismatch fails with qerrors.XvaError{Kind: "TimeGridMismatch"} and a
// discount-factor mismatch with Kind "DiscountFactorMismatch".
func ComputeXVA[F numeric.Number[F]](portfolio Portfolio[F], opts Options) (PortfolioXva, error) {
	if len(opts.TimeGrid) == 0 {
		return PortfolioXva{}, qerrors.XvaError{Kind: "EmptyTimeGrid", Field: "TimeGrid", Value: 0}
	}
	if len(opts.DiscountFactors) != len(opts.TimeGrid) {
		return PortfolioXva{}, qerrors.XvaError{Kind: "DiscountFactorMismatch", Field: "DiscountFactors", Value: len(opts.DiscountFactors)}
	}
	for _, cp := range portfolio.Counterparties {
		for _, ns := range cp.NettingSets {
			if ns.Profile == nil || len(ns.Profile.EE) != len(opts.TimeGrid) || len(ns.Profile.ENE) != len(opts.TimeGrid) {
				return PortfolioXva{}, qerrors.XvaError{Kind: "TimeGridMismatch", Field: "Profile", Value: ns.Name}
			}
		}
	}

	ownSurvivalDiffs := survivalDiffs(opts.OwnHazardRate, opts.TimeGrid)
	borrowWeights := fundingWeights(opts.FundingBorrowSpread, opts.DiscountFactors, opts.TimeGrid)
	lendWeights := fundingWeights(opts.FundingLendSpread, opts.DiscountFactors, opts.TimeGrid)
	ownLgd := 1 - opts.OwnRecoveryRate

	var result PortfolioXva
	for _, cp := range portfolio.Counterparties {
		cpLgd := 1 - cp.RecoveryRate
		cpSurvivalDiffs := survivalDiffs(cp.HazardRate, opts.TimeGrid)

		var cpResult CounterpartyXva
		cpResult.Name = cp.Name

		for _, ns := range cp.NettingSets {
			nsResult := NettingSetXva{
				Name: ns.Name,
				CVA:  numeric.MulC(weightedTrapz(ns.Profile.EE, cpSurvivalDiffs), cpLgd).Value(),
				DVA:  numeric.MulC(weightedTrapz(ns.Profile.ENE, ownSurvivalDiffs), ownLgd).Value(),
				FCA:  weightedTrapz(ns.Profile.EE, borrowWeights).Value(),
				FBA:  weightedTrapz(ns.Profile.ENE, lendWeights).Value(),
			}
			cpResult.NettingSets = append(cpResult.NettingSets, nsResult)
			cpResult.CVA += nsResult.CVA
			cpResult.DVA += nsResult.DVA
			cpResult.FCA += nsResult.FCA
			cpResult.FBA += nsResult.FBA
		}

		result.Counterparties = append(result.Counterparties, cpResult)
		result.CVA += cpResult.CVA
		result.DVA += cpResult.DVA
		result.FCA += cpResult.FCA
		result.FBA += cpResult.FBA
	}
	result.FVA = result.FCA - result.FBA
	return result, nil
}
