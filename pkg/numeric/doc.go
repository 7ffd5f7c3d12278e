// Package numeric supplies the single scalar abstraction every pricing
// formula in this module is written against: F64 for plain valuation and
// Dual for forward-mode differentiation. Both satisfy Number[F], so a
// formula written once as a generic function over Number[F] gets a
// derivative-carrying variant for free by re-instantiation, never by
// duplicating the formula.
//
// It also carries the small set of domain primitives every other package
// depends on: Date, DayCountConvention, and Currency.
package numeric
