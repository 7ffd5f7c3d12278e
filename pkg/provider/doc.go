// Package provider implements the process-wide, thread-safe, lazily
// populated market-data cache: GetCurve and GetSurface build a curve or
// surface on first request for a given key and hand back a shared,
// immutable object on every request thereafter. Concurrent duplicate
// misses for the same key collapse into a single build — the provider
// guarantees its builder runs at most once per key per cache lifetime.
package provider
