package schedule

import (
	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
)

// BusinessDayConvention adjusts a generated period boundary that falls on
// a non-business day. This implementation treats weekends as the only
// non-business days (a full holiday calendar is an out-of-scope
// collaborator's concern — see spec.md §1's FpML/CSV trade-adapter
// exclusion).
type BusinessDayConvention int

const (
	Unadjusted BusinessDayConvention = iota
	Following
	ModifiedFollowing
	Preceding
)

// Frequency is the number of payments per year; periods are generated at
// 12/Frequency month intervals.
type Frequency int

const (
	Annual     Frequency = 1
	SemiAnnual Frequency = 2
	Quarterly  Frequency = 4
	Monthly    Frequency = 12
)

// Period is one accrual period: it runs from Start to End, pays on Pay
// (after business-day adjustment), and accrues YearFraction of a year
// under the schedule's day-count convention.
type Period struct {
	Start, End, Pay numeric.Date
	YearFraction    float64
}

// Schedule is the ordered, contiguous, non-overlapping sequence of accrual
// periods between a start and end date.
type Schedule struct {
	Periods []Period
}

// Build generates a schedule from start to end at the given frequency,
// applying dayCount for each period's year fraction and bdc to each
// period's pay date; Start and End stay unadjusted. Invariant: periods are contiguous (period
// i's End equals period i+1's Start) and non-overlapping by construction.
func Build(start, end numeric.Date, freq Frequency, dayCount numeric.DayCountConvention, bdc BusinessDayConvention) (*Schedule, error) {
	if !start.Before(end) {
		return nil, qerrors.ConfigError{Kind: "InvalidPathCount", Field: "start>=end", Value: start.String()}
	}
	if freq <= 0 {
		return nil, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "frequency", Value: int(freq)}
	}

	monthsPerPeriod := 12 / int(freq)
	if monthsPerPeriod*int(freq) != 12 {
		return nil, qerrors.ConfigError{Kind: "InvalidStepCount", Field: "frequency", Value: int(freq)}
	}

	var periods []Period
	cur := start
	for cur.Before(end) {
		next := cur.AddMonths(monthsPerPeriod)
		if next.After(end) {
			next = end
		}
		pay := adjust(next, bdc)
		yf := dayCount.YearFraction(cur, next)
		periods = append(periods, Period{Start: cur, End: next, Pay: pay, YearFraction: yf})
		cur = next
	}
	return &Schedule{Periods: periods}, nil
}

// adjust applies bdc to d, treating Saturday/Sunday as the only
// non-business days.
func adjust(d numeric.Date, bdc BusinessDayConvention) numeric.Date {
	if bdc == Unadjusted {
		return d
	}
	weekday := d.Time().Weekday()
	if weekday != 0 && weekday != 6 {
		return d
	}
	switch bdc {
	case Following, ModifiedFollowing:
		adjusted := d
		for {
			adjusted = adjusted.AddDays(1)
			w := adjusted.Time().Weekday()
			if w != 0 && w != 6 {
				break
			}
		}
		if bdc == ModifiedFollowing && adjusted.Time().Month() != d.Time().Month() {
			return precede(d)
		}
		return adjusted
	case Preceding:
		return precede(d)
	default:
		return d
	}
}

func precede(d numeric.Date) numeric.Date {
	adjusted := d
	for {
		adjusted = adjusted.AddDays(-1)
		w := adjusted.Time().Weekday()
		if w != 0 && w != 6 {
			return adjusted
		}
	}
}

// TotalYearFraction sums every period's YearFraction.
func (s *Schedule) TotalYearFraction() float64 {
	total := 0.0
	for _, p := range s.Periods {
		total += p.YearFraction
	}
	return total
}
