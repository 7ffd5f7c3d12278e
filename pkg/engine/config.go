package engine

import (
	"math"

	"github.com/aristath/quantrisk/pkg/qerrors"
)

// ADMode names the caller's differentiation strategy. See doc.go for how
// this maps to the F type parameter the caller actually instantiates
// Price[F] with.
type ADMode int

const (
	NoAd ADMode = iota
	Forward
	Reverse
	ReverseCheckpoint
)

func (m ADMode) String() string {
	switch m {
	case NoAd:
		return "NoAd"
	case Forward:
		return "Forward"
	case Reverse:
		return "Reverse"
	case ReverseCheckpoint:
		return "ReverseCheckpoint"
	default:
		return "Unknown"
	}
}

// CheckpointPolicy names the memory/recompute trade-off a ReverseCheckpoint
// run would use, per spec.md §6's checkpoint_policy config value. No
// adjoint pass exists yet to consume a policy (see Validate), so this
// package only validates that one was supplied; it does not yet drive a
// checkpoint manager.
type CheckpointPolicy interface {
	isCheckpointPolicy()
}

// Uniform snapshots every Interval steps.
type Uniform struct{ Interval int }

func (Uniform) isCheckpointPolicy() {}

// Sqrt snapshots every sqrt(N_steps) steps, the memory/recompute balance
// spec.md §4.4.5 names as the default for ReverseCheckpoint.
type Sqrt struct{}

func (Sqrt) isCheckpointPolicy() {}

// Revolve snapshots at most Budget checkpoints, evenly spaced across
// N_steps, approximating the classical Revolve algorithm's snapshot
// placement without its full recomputation-ordering optimality.
type Revolve struct{ Budget int }

func (Revolve) isCheckpointPolicy() {}

// Config fixes everything price() needs beyond the model/trade/market
// arguments themselves: path/step counts, the master seed, the declared
// AD strategy, and the smoothing epsilon default.
type Config struct {
	NPaths           int
	NSteps           int
	Seed             *uint64
	ADMode           ADMode
	CheckpointPolicy CheckpointPolicy
	SmoothingEpsilon float64
	TileCount        int // 0 selects xconcurrent.DefaultTileCount()
}

// Validate checks the bounds spec.md §6 lists, returning a
// qerrors.ConfigErrors aggregate rather than failing on the first
// violation, so a caller sees every problem in one pass.
//
// Reverse and ReverseCheckpoint are always rejected, with or without a
// CheckpointPolicy: no adjoint pass exists yet to back them, and a config
// value that looks accepted but silently prices Forward's tangent under a
// different label is worse than one that fails loudly at construction.
// The CheckpointPolicy-required check below still runs first so a caller
// who also forgot the policy sees that problem named too.
func (c Config) Validate() error {
	var errs qerrors.ConfigErrors
	if c.NPaths < 1 || c.NPaths > 10_000_000 {
		errs = append(errs, qerrors.ConfigError{Kind: "InvalidPathCount", Field: "NPaths", Value: c.NPaths})
	}
	if c.NSteps < 1 || c.NSteps > 10_000 {
		errs = append(errs, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "NSteps", Value: c.NSteps})
	}
	if math.IsNaN(c.SmoothingEpsilon) || math.IsInf(c.SmoothingEpsilon, 0) || c.SmoothingEpsilon < 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "SmoothingEpsilon", Value: c.SmoothingEpsilon})
	}
	if (c.ADMode == Reverse || c.ADMode == ReverseCheckpoint) && c.CheckpointPolicy == nil {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "CheckpointPolicy", Value: nil})
	}
	if c.ADMode == Reverse || c.ADMode == ReverseCheckpoint {
		errs = append(errs, qerrors.ConfigError{Kind: "UnimplementedADMode", Field: "ADMode", Value: c.ADMode.String()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
