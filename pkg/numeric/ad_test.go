package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTangentExtractsDualDerivative(t *testing.T) {
	x := Seed(3)
	y := x.Mul(x) // d/dx x^2 = 2x = 6 at x=3
	tangent, ok := Tangent(y)
	assert.True(t, ok)
	assert.InDelta(t, 6.0, tangent, 1e-9)
}

func TestTangentFalseForF64(t *testing.T) {
	_, ok := Tangent(F64(3))
	assert.False(t, ok)
}
