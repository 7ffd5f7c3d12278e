package xva

import "github.com/aristath/quantrisk/pkg/numeric"

// NettingSet bundles one exposure profile with the name it is reported
// under. ComputeXVA prices each netting set separately with its
// counterparty's hazard rate and sums the results; exposures of different
// netting sets are not netted against each other.
type NettingSet[F numeric.Number[F]] struct {
	Name    string
	Profile *ExposureProfile[F]
}

// Counterparty carries the flat hazard rate and recovery assumption that
// drive CVA for every netting set traded with it.
type Counterparty[F numeric.Number[F]] struct {
	Name         string
	HazardRate   float64
	RecoveryRate float64
	NettingSets  []NettingSet[F]
}

// Portfolio is the top of the bottom-up aggregation: netting set →
// counterparty → portfolio (spec.md §4.5).
type Portfolio[F numeric.Number[F]] struct {
	Counterparties []Counterparty[F]
}

// Options carries everything ComputeXVA needs beyond the portfolio
// itself: the shared time grid, discount factors aligned to it, funding
// spreads, and the reporting entity's own hazard rate/recovery (for DVA).
type Options struct {
	TimeGrid            []float64
	DiscountFactors      []float64
	FundingBorrowSpread  float64
	FundingLendSpread    float64
	OwnHazardRate        float64
	OwnRecoveryRate      float64
}
