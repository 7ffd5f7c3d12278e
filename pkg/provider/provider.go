package provider

import (
	"fmt"
	"sync"
	"time"

	"github.com/aristath/quantrisk/pkg/curve"
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/surface"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// CurveKind names which discount curve a (currency, kind) key resolves
// to.
type CurveKind int

const (
	OIS CurveKind = iota
	IBOR3M
	IBOR6M
)

func (k CurveKind) String() string {
	switch k {
	case OIS:
		return "OIS"
	case IBOR3M:
		return "IBOR3M"
	case IBOR6M:
		return "IBOR6M"
	default:
		return "UNKNOWN_CURVE_KIND"
	}
}

// SurfaceKind names which volatility surface a (currency, kind) key
// resolves to.
type SurfaceKind int

const (
	EquityVol SurfaceKind = iota
	FXVol
	RatesVol
)

func (k SurfaceKind) String() string {
	switch k {
	case EquityVol:
		return "EquityVol"
	case FXVol:
		return "FXVol"
	case RatesVol:
		return "RatesVol"
	default:
		return "UNKNOWN_SURFACE_KIND"
	}
}

// CurveKey and SurfaceKey are the provider's cache keys (spec.md §3).
type CurveKey struct {
	Currency numeric.Currency
	Kind     CurveKind
}

type SurfaceKey struct {
	Currency numeric.Currency
	Kind     SurfaceKind
}

func (k CurveKey) String() string   { return fmt.Sprintf("%s/%s", k.Currency, k.Kind) }
func (k SurfaceKey) String() string { return fmt.Sprintf("%s/%s", k.Currency, k.Kind) }

// CurveSource supplies the market quotes the provider bootstraps a curve
// from. It is the out-of-scope collaborator spec.md names as "mock
// market-data feeds" — the provider only knows how to turn quotes into a
// curve, never where the quotes come from.
type CurveSource interface {
	CurveQuotes(ccy numeric.Currency, kind CurveKind) ([]curve.Quote, curve.Interpolation, error)
}

// SurfaceSource supplies the smile quotes a surface is calibrated from.
type SurfaceSource interface {
	SurfaceQuotes(ccy numeric.Currency, kind SurfaceKind) (SurfaceCalibrationInput, error)
}

// SurfaceCalibrationInput bundles everything CalibrateSABRGrid needs for
// one (currency, kind) surface.
type SurfaceCalibrationInput struct {
	Expiries []float64
	Forwards []float64
	Beta     float64
	Quotes   [][]surface.SmileQuote
	Strikes  []float64
}

// Provider is the process-wide cache described in spec.md §4.3: a
// (Empty|Building|Ready) state machine per key, implemented with
// singleflight so concurrent duplicate misses collapse into one build.
type Provider struct {
	curveSource   CurveSource
	surfaceSource SurfaceSource

	mu       sync.RWMutex
	curves   map[CurveKey]*curve.Curve[numeric.F64]
	surfaces map[SurfaceKey]*surface.Surface[numeric.F64]
	builtAt  map[string]time.Time

	curveGroup   singleflight.Group
	surfaceGroup singleflight.Group

	log zerolog.Logger
	ttl time.Duration
	cr  *cron.Cron
}

// Option configures a Provider at construction.
type Option func(*Provider)

// WithLogger overrides the default no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Provider) { p.log = log.With().Str("component", "market_provider").Logger() }
}

// WithTTL enables an optional background sweep that evicts cache entries
// older than ttl, scheduled with robfig/cron. Cache invalidation itself is
// out of scope (spec.md §4.3); this only implements the optional TTL
// lifecycle hinted at in spec.md §3.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) { p.ttl = ttl }
}

// New constructs an empty provider. Every (ccy, kind) is built at most
// once, the first time it is requested.
func New(curveSource CurveSource, surfaceSource SurfaceSource, opts ...Option) *Provider {
	p := &Provider{
		curveSource:   curveSource,
		surfaceSource: surfaceSource,
		curves:        make(map[CurveKey]*curve.Curve[numeric.F64]),
		surfaces:      make(map[SurfaceKey]*surface.Surface[numeric.F64]),
		builtAt:       make(map[string]time.Time),
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ttl > 0 {
		p.cr = cron.New()
		_, _ = p.cr.AddFunc("@every 1m", p.sweepExpired)
		p.cr.Start()
	}
	return p
}

// Close stops the background TTL sweep, if one was configured. A fresh
// provider is expected per pricing run, so Close is only relevant for
// long-lived provider instances.
func (p *Provider) Close() {
	if p.cr != nil {
		p.cr.Stop()
	}
}

// GetCurve returns the shared, immutable curve for (ccy, kind), building
// it on first request. Two goroutines racing on the same key observe
// exactly one "bootstrapping" log line and return the identical curve
// pointer.
func (p *Provider) GetCurve(ccy numeric.Currency, kind CurveKind) (*curve.Curve[numeric.F64], error) {
	key := CurveKey{Currency: ccy, Kind: kind}

	p.mu.RLock()
	if c, ok := p.curves[key]; ok {
		p.mu.RUnlock()
		return c, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.curveGroup.Do(key.String(), func() (any, error) {
		p.mu.RLock()
		if c, ok := p.curves[key]; ok {
			p.mu.RUnlock()
			return c, nil
		}
		p.mu.RUnlock()

		p.log.Info().Str("currency", ccy.Code).Str("curve_kind", kind.String()).Msg("bootstrapping curve")

		quotes, interp, err := p.curveSource.CurveQuotes(ccy, kind)
		if err != nil {
			return nil, err
		}
		built, err := curve.Bootstrap(0, quotes, interp)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.curves[key] = built
		p.builtAt[key.String()] = time.Now()
		p.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*curve.Curve[numeric.F64]), nil
}

// GetSurface returns the shared, immutable surface for (ccy, kind),
// calibrating it on first request.
func (p *Provider) GetSurface(ccy numeric.Currency, kind SurfaceKind) (*surface.Surface[numeric.F64], error) {
	key := SurfaceKey{Currency: ccy, Kind: kind}

	p.mu.RLock()
	if s, ok := p.surfaces[key]; ok {
		p.mu.RUnlock()
		return s, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.surfaceGroup.Do(key.String(), func() (any, error) {
		p.mu.RLock()
		if s, ok := p.surfaces[key]; ok {
			p.mu.RUnlock()
			return s, nil
		}
		p.mu.RUnlock()

		p.log.Info().Str("currency", ccy.Code).Str("surface_kind", kind.String()).Msg("calibrating surface")

		input, err := p.surfaceSource.SurfaceQuotes(ccy, kind)
		if err != nil {
			return nil, err
		}
		built, _, err := surface.CalibrateSABRGrid(input.Expiries, input.Forwards, input.Beta, input.Quotes, input.Strikes)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.surfaces[key] = built
		p.builtAt[key.String()] = time.Now()
		p.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*surface.Surface[numeric.F64]), nil
}

func (p *Provider) sweepExpired() {
	if p.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-p.ttl)
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, at := range p.builtAt {
		if at.Before(cutoff) {
			delete(p.builtAt, k)
			for ck := range p.curves {
				if ck.String() == k {
					delete(p.curves, ck)
				}
			}
			for sk := range p.surfaces {
				if sk.String() == k {
					delete(p.surfaces, sk)
				}
			}
		}
	}
}
