// Package stochastic defines the StochasticModel contract spec.md §3
// describes — a pure function evolving a state vector from t to t+Δt given
// a vector of standard-normal increments and a parameter set — and its
// concrete realizations: GBM (exact log-space step), Hull-White 1F, CIR,
// Heston, and a Correlated composition of single-factor models driven by a
// shared correlation matrix.
package stochastic
