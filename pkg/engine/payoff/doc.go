// Package payoff implements the unified payoff trait spec.md §4.4.3
// describes: every trade variant reduces a path's observer summary (and,
// for curve-priced legs, a discount/forward curve) to a single undiscounted
// terminal value. Vanilla, Asian, Barrier, and Lookback read the path
// observer built while the engine simulates the underlying; IRS and CDS
// are priced directly off the discount/forward curves the same way a
// desk prices a linear-rates product, with no path simulation needed.
package payoff
