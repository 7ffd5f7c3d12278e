package workspace

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
)

// Workspace holds every buffer one thread needs to price one path:
// standard normals and a PathObserver. It is allocated once per tile and
// reused for every path and every step within that tile — ResetForPath
// clears logical content without releasing or reallocating the
// underlying slices.
type Workspace[F numeric.Number[F]] struct {
	randomsPerStep int
	nSteps         int
	dimension      int

	normals []F

	obs *observer.PathObserver[F]
}

// New allocates a Workspace for a model of the given state dimension,
// randomsPerStep standard normals consumed per step, over nSteps steps.
// reqs is forwarded to the observer so it only tracks the running
// statistics the active payoff actually reads.
func New[F numeric.Number[F]](dimension, randomsPerStep, nSteps int, epsilon F, reqs observer.Requirements) *Workspace[F] {
	return &Workspace[F]{
		randomsPerStep: randomsPerStep,
		nSteps:         nSteps,
		dimension:      dimension,
		normals:        make([]F, nSteps*randomsPerStep),
		obs:            observer.New(epsilon, reqs),
	}
}

// Normals returns the preallocated normals buffer: step i's randoms live
// at [i*randomsPerStep : (i+1)*randomsPerStep].
func (w *Workspace[F]) Normals() []F { return w.normals }

// StepRandoms returns the slice of randoms for step i without copying.
func (w *Workspace[F]) StepRandoms(step int) []F {
	start := step * w.randomsPerStep
	return w.normals[start : start+w.randomsPerStep]
}

// Observer returns the reusable path observer.
func (w *Workspace[F]) Observer() *observer.PathObserver[F] { return w.obs }

// ResetForPath clears the observer's per-path state so the same
// Workspace can be reused for the next path without reallocating.
func (w *Workspace[F]) ResetForPath() {
	w.obs.Reset()
}
