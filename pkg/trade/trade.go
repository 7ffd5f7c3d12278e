package trade

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"github.com/aristath/quantrisk/pkg/schedule"
)

// OptionType distinguishes the three vanilla payoff shapes.
type OptionType int

const (
	Call OptionType = iota
	Put
	Digital
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "Call"
	case Put:
		return "Put"
	case Digital:
		return "Digital"
	default:
		return "Unknown"
	}
}

// ExerciseStyle names when a Vanilla option can be exercised. Only
// European is priceable by this engine; American and Bermudan are rejected
// at construction with qerrors.ModelError{Kind: "UnsupportedExerciseStyle"}
// rather than silently mispriced by a vanilla MC path.
type ExerciseStyle int

const (
	European ExerciseStyle = iota
	American
	Bermudan
)

func (s ExerciseStyle) String() string {
	switch s {
	case European:
		return "European"
	case American:
		return "American"
	case Bermudan:
		return "Bermudan"
	default:
		return "Unknown"
	}
}

// AverageType distinguishes the two Asian averaging conventions.
type AverageType int

const (
	Arithmetic AverageType = iota
	Geometric
)

// BarrierType distinguishes knock-in from knock-out.
type BarrierType int

const (
	KnockIn BarrierType = iota
	KnockOut
)

// BarrierDirection distinguishes an up barrier (breached from below) from
// a down barrier (breached from above).
type BarrierDirection int

const (
	Up BarrierDirection = iota
	Down
)

// Common fields every Trade variant carries: spec.md §2.1's "notional,
// settlement currency, smoothing epsilon used wherever non-smooth payoffs
// appear".
type Common struct {
	Notional float64
	Currency numeric.Currency
	Epsilon  float64
}

// Trade is the sum type spec.md §2.1 describes. Go has no native sum
// types, so it is emulated the usual way: an interface with an unexported
// marker method, implemented by exactly the variants below.
type Trade interface {
	common() Common
	isTrade()
}

func (c Common) common() Common { return c }

func validateCommon(c Common) error {
	var errs qerrors.ConfigErrors
	if c.Notional == 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Notional", Value: c.Notional})
	}
	if c.Epsilon < 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "Epsilon", Value: c.Epsilon})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Vanilla is a European/American/Bermudan call, put, or digital struck at
// Strike, maturing at Maturity (year fraction from valuation date).
type Vanilla struct {
	Common
	Type     OptionType
	Strike   float64
	Maturity float64
	Style    ExerciseStyle
}

func (Vanilla) isTrade() {}

// NewVanilla validates and constructs a Vanilla trade. Only European
// exercise is supported; American and Bermudan are rejected here rather
// than mispriced by vanilla Monte Carlo.
func NewVanilla(c Common, typ OptionType, strike, maturity float64, style ExerciseStyle) (Vanilla, error) {
	var errs qerrors.ConfigErrors
	if err := validateCommon(c); err != nil {
		errs = append(errs, err.(qerrors.ConfigErrors)...)
	}
	if strike <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Strike", Value: strike})
	}
	if maturity <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Maturity", Value: maturity})
	}
	if len(errs) > 0 {
		return Vanilla{}, errs
	}
	if style != European {
		return Vanilla{}, qerrors.ModelError{Kind: "UnsupportedExerciseStyle", Field: "Style", Value: style.String()}
	}
	return Vanilla{Common: c, Type: typ, Strike: strike, Maturity: maturity, Style: style}, nil
}

// Forward is a linear payoff: notional * (S_T - Strike).
type Forward struct {
	Common
	Strike   float64
	Maturity float64
}

func (Forward) isTrade() {}

func NewForward(c Common, strike, maturity float64) (Forward, error) {
	if err := validateCommon(c); err != nil {
		return Forward{}, err
	}
	if maturity <= 0 {
		return Forward{}, qerrors.ConfigError{Kind: "MissingParameter", Field: "Maturity", Value: maturity}
	}
	return Forward{Common: c, Strike: strike, Maturity: maturity}, nil
}

// Asian averages Observations equally-spaced observations of the
// underlying under AvgType before applying the Vanilla-style strike
// comparison.
type Asian struct {
	Common
	Type         OptionType
	Strike       float64
	Maturity     float64
	AvgType      AverageType
	Observations int
}

func (Asian) isTrade() {}

func NewAsian(c Common, typ OptionType, strike, maturity float64, avgType AverageType, observations int) (Asian, error) {
	var errs qerrors.ConfigErrors
	if err := validateCommon(c); err != nil {
		errs = append(errs, err.(qerrors.ConfigErrors)...)
	}
	if strike <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Strike", Value: strike})
	}
	if maturity <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Maturity", Value: maturity})
	}
	if observations < 1 {
		errs = append(errs, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "Observations", Value: observations})
	}
	if len(errs) > 0 {
		return Asian{}, errs
	}
	return Asian{Common: c, Type: typ, Strike: strike, Maturity: maturity, AvgType: avgType, Observations: observations}, nil
}

// Barrier is a call or put that is knocked in or out when the path crosses
// Level from the side given by Direction.
type Barrier struct {
	Common
	Type      OptionType
	Strike    float64
	Maturity  float64
	Level     float64
	Kind      BarrierType
	Direction BarrierDirection
}

func (Barrier) isTrade() {}

func NewBarrier(c Common, typ OptionType, strike, maturity, level float64, kind BarrierType, direction BarrierDirection) (Barrier, error) {
	var errs qerrors.ConfigErrors
	if err := validateCommon(c); err != nil {
		errs = append(errs, err.(qerrors.ConfigErrors)...)
	}
	if strike <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Strike", Value: strike})
	}
	if maturity <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Maturity", Value: maturity})
	}
	if level <= 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Level", Value: level})
	}
	if len(errs) > 0 {
		return Barrier{}, errs
	}
	return Barrier{Common: c, Type: typ, Strike: strike, Maturity: maturity, Level: level, Kind: kind, Direction: direction}, nil
}

// Lookback pays the running extreme of the path: a lookback call pays
// S_T - running min, a lookback put pays running max - S_T.
type Lookback struct {
	Common
	Type     OptionType
	Maturity float64
}

func (Lookback) isTrade() {}

func NewLookback(c Common, typ OptionType, maturity float64) (Lookback, error) {
	if err := validateCommon(c); err != nil {
		return Lookback{}, err
	}
	if maturity <= 0 {
		return Lookback{}, qerrors.ConfigError{Kind: "MissingParameter", Field: "Maturity", Value: maturity}
	}
	return Lookback{Common: c, Type: typ, Maturity: maturity}, nil
}

// IRS is a vanilla fixed-for-floating interest rate swap: FixedRate paid
// (or received, if PayFixed is false) on Schedule against the floating
// leg implied by the discount/projection curve the engine is given.
type IRS struct {
	Common
	FixedRate float64
	Schedule  *schedule.Schedule
	PayFixed  bool
}

func (IRS) isTrade() {}

func NewIRS(c Common, fixedRate float64, sched *schedule.Schedule, payFixed bool) (IRS, error) {
	if err := validateCommon(c); err != nil {
		return IRS{}, err
	}
	if sched == nil || len(sched.Periods) == 0 {
		return IRS{}, qerrors.ConfigError{Kind: "MissingParameter", Field: "Schedule", Value: sched}
	}
	return IRS{Common: c, FixedRate: fixedRate, Schedule: sched, PayFixed: payFixed}, nil
}

// CDS is a single-name credit default swap: Spread paid periodically on
// Schedule while no default has occurred, against a protection payment of
// Notional*(1-RecoveryRate) on default, under the hazard-rate survival
// curve Q(t) = exp(-HazardRate*t).
type CDS struct {
	Common
	Spread       float64
	RecoveryRate float64
	HazardRate   float64
	Schedule     *schedule.Schedule
}

func (CDS) isTrade() {}

func NewCDS(c Common, spread, recoveryRate, hazardRate float64, sched *schedule.Schedule) (CDS, error) {
	var errs qerrors.ConfigErrors
	if err := validateCommon(c); err != nil {
		errs = append(errs, err.(qerrors.ConfigErrors)...)
	}
	if sched == nil || len(sched.Periods) == 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "Schedule", Value: sched})
	}
	if recoveryRate < 0 || recoveryRate > 1 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "RecoveryRate", Value: recoveryRate})
	}
	if hazardRate < 0 {
		errs = append(errs, qerrors.ConfigError{Kind: "MissingParameter", Field: "HazardRate", Value: hazardRate})
	}
	if len(errs) > 0 {
		return CDS{}, errs
	}
	return CDS{Common: c, Spread: spread, RecoveryRate: recoveryRate, HazardRate: hazardRate, Schedule: sched}, nil
}
