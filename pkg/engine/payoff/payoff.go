package payoff

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
)

// Payoff is the trait every Trade variant implements: reduce one path's
// observer (running sum/log-sum/min/max/count/terminal, per spec.md §2.1)
// to a single undiscounted value. Discounting and accumulation into
// running sum/sum-of-squares is the engine's job (spec.md §4.4.2 steps
// 4-5), not the payoff's. Requires declares which of those running
// statistics Evaluate actually reads, so the engine can elide the rest
// per spec.md §4.4.3.
type Payoff[F numeric.Number[F]] interface {
	Evaluate(obs *observer.PathObserver[F]) F
	Requires() observer.Requirements
}
