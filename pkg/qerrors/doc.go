// Package qerrors defines the typed error taxonomy shared by every layer
// of the core: ConfigError (caller bugs, detected at construction),
// MarketDataError (surfaced by the provider), ModelError (raised by the
// pricing engine), and XvaError (raised by the aggregator). Every error
// names the offending field and its value; none of them are ever raised
// from inside a hot loop — per-path numerical failures are counted, not
// propagated (see engine.PricingResult.DroppedPaths).
package qerrors
