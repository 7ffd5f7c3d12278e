// Package xva aggregates Monte-Carlo exposure samples into CVA, DVA, FCA
// and FBA along a shared time grid, bottom-up from netting set to
// counterparty to portfolio (spec.md §4.5). Exposure-profile reduction
// (EE/ENE) is generic over numeric.Number so it can carry Dual tangents
// under forward-mode AD; the trapezoidal integrator is hand-rolled for the
// same reason rather than calling gonum's float64-only trapz helper. The
// fast path that prices straight from plain Monte-Carlo output (no AD)
// uses gonum.org/v1/gonum/stat for the exposure mean reduction.
package xva
