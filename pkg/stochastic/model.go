package stochastic

import "github.com/aristath/quantrisk/pkg/numeric"

// StochasticModel evolves a state vector from t to t+dt given a slice of
// standard-normal increments of RandomsPerStep length and its own
// parameter set. EvolveStep must be a pure function of (state, dt,
// randoms): no internal mutable state, no allocation surprises beyond the
// returned slice, so the engine can call it once per path per step inside
// a preallocated workspace.
type StochasticModel[F numeric.Number[F]] interface {
	// Dimension is the number of scalars in the state vector.
	Dimension() int
	// RandomsPerStep is the number of independent standard normals
	// EvolveStep consumes per call.
	RandomsPerStep() int
	// InitialState returns state0, copied fresh from the model's params.
	InitialState() []F
	// EvolveStep advances state by dt given randoms, returning the new
	// state. It must not mutate state.
	EvolveStep(state []F, dt float64, randoms []F) []F
}
