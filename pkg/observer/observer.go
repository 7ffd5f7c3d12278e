package observer

import "github.com/aristath/quantrisk/pkg/numeric"

// Requirements declares which of PathObserver's running statistics a
// payoff actually reads, per spec.md §4.4.3's table (Vanilla needs only
// the terminal value; Asian arithmetic needs the running sum; Asian
// geometric needs the running log-sum; Barrier/Lookback need the running
// max and/or min). Consume only updates what Requires asks for, so a
// Vanilla path never pays for a SmoothMax/SmoothMin/Log it never reads.
type Requirements struct {
	Sum    bool
	LogSum bool
	Max    bool
	Min    bool
}

// All requires every running statistic PathObserver tracks.
func All() Requirements { return Requirements{Sum: true, LogSum: true, Max: true, Min: true} }

// PathObserver accumulates the statistics spec.md §2.1 lists for one path:
// running sum, running log-sum, running min, running max, observation
// count, and the terminal value, eliding whichever of sum/log-sum/min/max
// its Requirements says the active payoff does not read. Running min/max,
// when tracked, are accumulated through numeric.SmoothMax/SmoothMin rather
// than a hard branch, so that reverse-mode gradients on barrier/lookback
// payoffs flow through a smooth surrogate instead of a subgradient
// (spec.md §9 Open Question (a)).
type PathObserver[F numeric.Number[F]] struct {
	epsilon F
	reqs    Requirements

	started  bool
	sum      F
	logSum   F
	min      F
	max      F
	count    int
	terminal F
}

// New constructs an observer that tracks only the statistics reqs asks
// for, smoothing any tracked running max/min with epsilon (typically the
// trade's own smoothing epsilon).
func New[F numeric.Number[F]](epsilon F, reqs Requirements) *PathObserver[F] {
	return &PathObserver[F]{epsilon: epsilon, reqs: reqs}
}

// Reset marks the observer empty so it can be reused for the next path
// without allocating: the count returns to zero and the next Consume
// overwrites every tracked statistic with its first observation. Until
// that Consume, the statistic fields still hold the previous path's values.
func (o *PathObserver[F]) Reset() {
	o.started = false
	o.count = 0
}

// Consume folds one more observation of the underlying (typically spot at
// the current time step) into the running statistics Requirements asked
// for; untracked statistics are left at their zero value.
func (o *PathObserver[F]) Consume(x F) {
	if !o.started {
		if o.reqs.Sum {
			o.sum = x
		}
		if o.reqs.LogSum {
			o.logSum = x.Log()
		}
		if o.reqs.Max {
			o.max = x
		}
		if o.reqs.Min {
			o.min = x
		}
		o.started = true
	} else {
		if o.reqs.Sum {
			o.sum = o.sum.Add(x)
		}
		if o.reqs.LogSum {
			o.logSum = o.logSum.Add(x.Log())
		}
		if o.reqs.Max {
			o.max = numeric.SmoothMax(o.max, x, o.epsilon)
		}
		if o.reqs.Min {
			o.min = numeric.SmoothMin(o.min, x, o.epsilon)
		}
	}
	o.terminal = x
	o.count++
}

// Sum returns the running arithmetic sum of every observation consumed, or
// the zero value if Requirements.Sum was false.
func (o *PathObserver[F]) Sum() F { return o.sum }

// LogSum returns the running sum of logs, used for a geometric mean via
// exp(LogSum()/Count()), or the zero value if Requirements.LogSum was
// false.
func (o *PathObserver[F]) LogSum() F { return o.logSum }

// Min returns the smoothed running minimum, or the zero value if
// Requirements.Min was false.
func (o *PathObserver[F]) Min() F { return o.min }

// Max returns the smoothed running maximum, or the zero value if
// Requirements.Max was false.
func (o *PathObserver[F]) Max() F { return o.max }

// Count returns the number of observations consumed since the last Reset.
func (o *PathObserver[F]) Count() int { return o.count }

// Terminal returns the most recently consumed observation.
func (o *PathObserver[F]) Terminal() F { return o.terminal }

// ArithmeticMean returns Sum()/Count(), the Asian-arithmetic average.
func (o *PathObserver[F]) ArithmeticMean() F {
	return numeric.DivC(o.sum, float64(o.count))
}

// GeometricMean returns exp(LogSum()/Count()), the Asian-geometric
// average.
func (o *PathObserver[F]) GeometricMean() F {
	return numeric.DivC(o.logSum, float64(o.count)).Exp()
}
