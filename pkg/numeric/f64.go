package numeric

import "math"

// F64 is the plain, non-differentiated realization of Number. Pricing with
// F64 throughout is the NoAd path: every operation is exactly the float64
// operation, with no forward or reverse bookkeeping attached.
type F64 float64

func (a F64) Add(b F64) F64 { return a + b }
func (a F64) Sub(b F64) F64 { return a - b }
func (a F64) Mul(b F64) F64 { return a * b }
func (a F64) Div(b F64) F64 { return a / b }
func (a F64) Neg() F64      { return -a }

func (a F64) Exp() F64  { return F64(math.Exp(float64(a))) }
func (a F64) Log() F64  { return F64(math.Log(float64(a))) }
func (a F64) Sqrt() F64 { return F64(math.Sqrt(float64(a))) }
func (a F64) Sin() F64  { return F64(math.Sin(float64(a))) }
func (a F64) Cos() F64  { return F64(math.Cos(float64(a))) }
func (a F64) Pow(b F64) F64 {
	return F64(math.Pow(float64(a), float64(b)))
}

func (a F64) New(v float64) F64 { return F64(v) }
func (a F64) Value() float64    { return float64(a) }
