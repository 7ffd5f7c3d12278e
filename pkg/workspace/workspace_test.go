package workspace

import (
	"testing"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/aristath/quantrisk/pkg/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocatesNormalsSizedForStepsAndFactors(t *testing.T) {
	w := New[numeric.F64](1, 2, 50, numeric.F64(1e-3), observer.Requirements{})
	assert.Len(t, w.Normals(), 100)
}

func TestStepRandomsSlicesWithoutCopy(t *testing.T) {
	w := New[numeric.F64](1, 2, 4, numeric.F64(1e-3), observer.Requirements{})
	normals := w.Normals()
	normals[2] = 0.5
	normals[3] = -0.5
	step1 := w.StepRandoms(1)
	require.Len(t, step1, 2)
	assert.Equal(t, numeric.F64(0.5), step1[0])
	assert.Equal(t, numeric.F64(-0.5), step1[1])
}

func TestObserverOnlyTracksDeclaredRequirements(t *testing.T) {
	w := New[numeric.F64](1, 1, 3, numeric.F64(1e-3), observer.Requirements{Sum: true})
	w.Observer().Consume(numeric.F64(100))
	w.Observer().Consume(numeric.F64(110))
	assert.Equal(t, numeric.F64(210), w.Observer().Sum())
	assert.Equal(t, numeric.F64(0), w.Observer().Max())
}

func TestResetForPathClearsObserverOnly(t *testing.T) {
	w := New[numeric.F64](1, 1, 10, numeric.F64(1e-3), observer.Requirements{})
	w.Observer().Consume(numeric.F64(100))
	w.Observer().Consume(numeric.F64(110))
	require.Equal(t, 2, w.Observer().Count())
	w.ResetForPath()
	assert.Equal(t, 0, w.Observer().Count())
}
