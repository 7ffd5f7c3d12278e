// Package surface implements volatility surfaces: flat, a strike x expiry
// grid, or a delta x expiry grid (FX convention), each queried through
// Sigma(strikeOrDelta, expiry). Surfaces are built once — by Flat,
// NewGrid, or CalibrateSABRGrid (Levenberg-Marquardt) — and are immutable and shared
// read-only thereafter, mirroring Curve's lifecycle.
package surface
