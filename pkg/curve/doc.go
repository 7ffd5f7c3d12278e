// Package curve implements discount curves: an ordered, strictly
// increasing sequence of pillar maturities with associated discount
// factors and an interpolation rule. A Curve is built once — by
// Flat, New or Bootstrap — and is immutable and safe for concurrent
// read-only use for the rest of its lifetime; the market-data provider is
// the only thing that constructs one on the caller's behalf.
package curve
