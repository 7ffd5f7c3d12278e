// Package engine implements the Monte-Carlo pricing engine's single
// entrypoint: Price (a package-level generic function taking a *Pricer)
// simulates N_paths of a stochastic model,
// reduces each path's payoff through a per-tile fold, and returns a
// PricingResult carrying the PV, its standard error, and (when priced
// with F=numeric.Dual) a Delta greek.
//
// The F realization (numeric.F64 for plain Monte Carlo, numeric.Dual for
// forward-mode differentiation) is chosen by the caller at the call site
// rather than by config.ADMode: Go generics are resolved at compile time,
// so the same compile-time choice other languages make inside price()
// from a runtime ad_mode enum is made here by instantiating Price[F] with
// the matching F. Config.ADMode still records the caller's declared
// intent and validates n_paths/n_steps bounds.
//
// Reverse and ReverseCheckpoint name a backward adjoint sweep this package
// does not implement: no per-model evolveStepAdjoint exists, so there is
// nothing for a checkpoint replay to recompute into. Config.Validate
// rejects both at construction rather than quietly running Forward's
// tangent extraction under a different label.
package engine
