package xva

import (
	"math"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/qerrors"
	"gonum.org/v1/gonum/stat"
)

// ExposureProfile holds EE(t)=mean(max(V,0)) and ENE(t)=mean(max(-V,0))
// at every point of a shared time grid, per spec.md §4.5.
type ExposureProfile[F numeric.Number[F]] struct {
	TimeGrid []float64
	EE       []F
	ENE      []F
}

// NewExposureProfile reduces, for each grid point, a column of per-path MC
// samples into EE/ENE using numeric.SmoothMax against zero rather than a
// hard max(), so that a Dual-valued sample carries its tangent through the
// reduction (spec.md §4.5's "using smooth_max under AD").
func NewExposureProfile[F numeric.Number[F]](timeGrid []float64, samples [][]F, epsilon F) (*ExposureProfile[F], error) {
	if len(timeGrid) == 0 {
		return nil, qerrors.XvaError{Kind: "EmptyTimeGrid", Field: "TimeGrid", Value: 0}
	}
	if len(samples) != len(timeGrid) {
		return nil, qerrors.XvaError{Kind: "TimeGridMismatch", Field: "samples", Value: len(samples)}
	}

	ee := make([]F, len(timeGrid))
	ene := make([]F, len(timeGrid))
	for i, col := range samples {
		if len(col) == 0 {
			return nil, qerrors.XvaError{Kind: "TimeGridMismatch", Field: "samples[i]", Value: i}
		}
		ee[i] = reduceMean(col, func(v F) F { return numeric.SmoothMax(v, v.New(0), epsilon) })
		ene[i] = reduceMean(col, func(v F) F { return numeric.SmoothMax(v.Neg(), v.New(0), epsilon) })
	}
	return &ExposureProfile[F]{TimeGrid: timeGrid, EE: ee, ENE: ene}, nil
}

func reduceMean[F numeric.Number[F]](col []F, transform func(F) F) F {
	acc := transform(col[0])
	for _, v := range col[1:] {
		acc = acc.Add(transform(v))
	}
	return numeric.DivC(acc, float64(len(col)))
}

// NewExposureProfileF64 is the plain Monte-Carlo fast path: no AD is in
// play, so EE/ENE are reduced with math.Max and averaged with
// gonum.org/v1/gonum/stat.Mean instead of the generic smooth-surrogate
// reduction above.
func NewExposureProfileF64(timeGrid []float64, samples [][]float64) (*ExposureProfile[numeric.F64], error) {
	if len(timeGrid) == 0 {
		return nil, qerrors.XvaError{Kind: "EmptyTimeGrid", Field: "TimeGrid", Value: 0}
	}
	if len(samples) != len(timeGrid) {
		return nil, qerrors.XvaError{Kind: "TimeGridMismatch", Field: "samples", Value: len(samples)}
	}

	ee := make([]numeric.F64, len(timeGrid))
	ene := make([]numeric.F64, len(timeGrid))
	posBuf := make([]float64, 0)
	negBuf := make([]float64, 0)
	for i, col := range samples {
		if len(col) == 0 {
			return nil, qerrors.XvaError{Kind: "TimeGridMismatch", Field: "samples[i]", Value: i}
		}
		posBuf = posBuf[:0]
		negBuf = negBuf[:0]
		for _, v := range col {
			posBuf = append(posBuf, math.Max(v, 0))
			negBuf = append(negBuf, math.Max(-v, 0))
		}
		ee[i] = numeric.F64(stat.Mean(posBuf, nil))
		ene[i] = numeric.F64(stat.Mean(negBuf, nil))
	}
	return &ExposureProfile[numeric.F64]{TimeGrid: timeGrid, EE: ee, ENE: ene}, nil
}
