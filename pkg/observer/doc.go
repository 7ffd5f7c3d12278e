// Package observer implements the streaming path accumulator the pricing
// engine's payoffs read from instead of storing full paths: running
// arithmetic sum, running log-sum (for geometric averages), running min,
// running max, observation count, and terminal value. It is reset between
// paths and never allocates after construction, matching the workspace's
// no-allocation invariant for the inner pricing loop.
package observer
