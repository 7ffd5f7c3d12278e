package engine

import (
	"context"
	"math"
	"time"

	"github.com/aristath/quantrisk/internal/xconcurrent"
	"github.com/aristath/quantrisk/pkg/engine/payoff"
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"github.com/aristath/quantrisk/pkg/rng"
	"github.com/aristath/quantrisk/pkg/stochastic"
	"github.com/aristath/quantrisk/pkg/workspace"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pricer holds a validated Config and the logger every price() call tags
// with its run ID. It carries no per-call mutable state, so one Pricer is
// reused across every Price call (spec.md §6's "Pricer::new(config) ->
// Pricer; Pricer::price(...) -> PricingResult" contract).
type Pricer struct {
	config Config
	log    zerolog.Logger
}

// Option configures a Pricer at construction.
type Option func(*Pricer)

// WithLogger overrides the default no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pricer) { p.log = log.With().Str("component", "pricer").Logger() }
}

// NewPricer validates config and constructs a Pricer. Invalid
// configuration (n_paths/n_steps out of range, missing checkpoint policy
// for a checkpointed AD mode, non-finite smoothing epsilon, or an
// unimplemented Reverse/ReverseCheckpoint ADMode) fails here, never
// mid-loop, per spec.md §4.4.7.
func NewPricer(config Config, opts ...Option) (*Pricer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &Pricer{config: config, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type tileResult[F numeric.Number[F]] struct {
	sumPV   F
	started bool
	sumSq   float64
	dropped int
	count   int
}

// Price runs config.NPaths paths of model through payoff py over maturity
// years, discounting the mean payoff with discount (itself an F so
// Forward-mode sensitivity to the discount factor flows through, if the
// caller seeded it). F=F64 realizes config.ADMode==NoAd; F=numeric.Dual
// realizes Forward (see doc.go — Reverse/ReverseCheckpoint never reach
// here, since NewPricer rejects both). ctx is checked for cancellation
// between tiles only, never mid-path.
func Price[F numeric.Number[F]](ctx context.Context, p *Pricer, model stochastic.StochasticModel[F], py payoff.Payoff[F], discount F, maturity float64) (PricingResult, error) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Str("ad_mode", p.config.ADMode.String()).Logger()
	log.Info().Int("n_paths", p.config.NPaths).Int("n_steps", p.config.NSteps).Msg("pricing run started")

	tileCount := p.config.TileCount
	if tileCount <= 0 {
		tileCount = xconcurrent.DefaultTileCount()
	}
	tiles := xconcurrent.Partition(p.config.NPaths, tileCount)

	var masterSeed uint64
	if p.config.Seed != nil {
		masterSeed = *p.config.Seed
	} else {
		masterSeed = uint64(time.Now().UnixNano())
	}

	dim := model.Dimension()
	k := model.RandomsPerStep()
	nSteps := p.config.NSteps
	dt := maturity / float64(nSteps)
	epsilon := epsilonFor[F](p.config.SmoothingEpsilon)
	reqs := py.Requires()

	combine := func(acc, x tileResult[F]) tileResult[F] {
		if !x.started {
			return acc
		}
		if !acc.started {
			return x
		}
		acc.sumPV = acc.sumPV.Add(x.sumPV)
		acc.sumSq += x.sumSq
		acc.dropped += x.dropped
		acc.count += x.count
		return acc
	}

	result, err := xconcurrent.Reduce(ctx, tiles, func(ctx context.Context, tile xconcurrent.Tile) (tileResult[F], error) {
		return runTile(model, py, dim, k, nSteps, dt, epsilon, masterSeed, tile, reqs)
	}, combine, tileResult[F]{})
	if err != nil {
		return PricingResult{}, err
	}

	if result.count == 0 {
		return PricingResult{}, qerrors.ModelError{Kind: "NumericalInstability", Field: "DroppedPaths", Value: p.config.NPaths}
	}

	meanPV := numeric.DivC(result.sumPV, float64(result.count))
	meanSq := result.sumSq / float64(result.count)
	variance := meanSq - meanPV.Value()*meanPV.Value()
	if variance < 0 {
		variance = 0
	}
	stderr := discount.Value() * math.Sqrt(variance/float64(result.count))

	pv := discount.Mul(meanPV)

	greeks := map[string]float64{}
	if tangent, ok := numeric.Tangent(pv); ok {
		greeks["delta"] = tangent
	}

	warning := float64(result.dropped) > 0.01*float64(p.config.NPaths)
	log.Info().Float64("pv", pv.Value()).Float64("stderr", stderr).Int("dropped", result.dropped).Bool("warning", warning).Msg("pricing run finished")

	return PricingResult{
		RunID:        runID,
		PV:           pv.Value(),
		StdErr:       stderr,
		Greeks:       greeks,
		NPaths:       p.config.NPaths,
		DroppedPaths: result.dropped,
		Warning:      warning,
	}, nil
}

func runTile[F numeric.Number[F]](
	model stochastic.StochasticModel[F],
	py payoff.Payoff[F],
	dim, k, nSteps int,
	dt float64,
	epsilon F,
	masterSeed uint64,
	tile xconcurrent.Tile,
	reqs observer.Requirements,
) (tileResult[F], error) {
	gen := rng.SubStream(masterSeed, tile.Index)
	ws := workspace.New[F](dim, k, nSteps, epsilon, reqs)

	var acc tileResult[F]
	var zero F

	for path := tile.Start; path < tile.End; path++ {
		ws.ResetForPath()

		state := model.InitialState()
		ws.Observer().Consume(state[0])

		for step := 0; step < nSteps; step++ {
			randoms := ws.StepRandoms(step)
			for j := 0; j < k; j++ {
				randoms[j] = zero.New(gen.Next())
			}
			state = model.EvolveStep(state, dt, randoms)
			ws.Observer().Consume(state[0])
		}

		value := py.Evaluate(ws.Observer())
		primal := value.Value()
		if math.IsNaN(primal) || math.IsInf(primal, 0) {
			acc.dropped++
			continue
		}

		if !acc.started {
			acc.sumPV = value
			acc.started = true
		} else {
			acc.sumPV = acc.sumPV.Add(value)
		}
		acc.sumSq += primal * primal
		acc.count++
	}
	return acc, nil
}

func epsilonFor[F numeric.Number[F]](eps float64) F {
	var zero F
	return zero.New(eps)
}
