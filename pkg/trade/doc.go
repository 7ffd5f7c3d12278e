// Package trade defines the sum type of instruments the pricing engine
// knows how to value: Vanilla, Forward, Asian, Barrier, Lookback, IRS, and
// CDS. Every variant carries its own instrument fields plus the shared
// Common fields: a notional, a settlement currency, and a smoothing
// epsilon used wherever the variant's payoff is not everywhere
// differentiable.
package trade
