package numeric

// Number is the field-element abstraction every formula in this module is
// written against. It must be total on its natural domain: a division by
// zero or a logarithm of a non-positive value returns the realization's
// non-finite sentinel rather than panicking. Callers that need to validate
// finiteness do so at the boundary, never inside a hot loop.
//
// New constructs a fresh value of the same realization from a plain
// float64 constant (the moral equivalent of "lift this literal into my
// algebra"); Value extracts the primal component for comparisons that are
// allowed to happen outside the differentiated inner loop (e.g. reporting,
// bucketing, logging).
type Number[F any] interface {
	Add(F) F
	Sub(F) F
	Mul(F) F
	Div(F) F
	Neg() F
	Exp() F
	Log() F
	Sqrt() F
	Sin() F
	Cos() F
	Pow(F) F
	New(float64) F
	Value() float64
}

// MulC and friends let generic code combine an F with a plain float64
// constant without round-tripping through New at every call site.
func MulC[F Number[F]](a F, c float64) F { return a.Mul(a.New(c)) }
func AddC[F Number[F]](a F, c float64) F { return a.Add(a.New(c)) }
func SubC[F Number[F]](a F, c float64) F { return a.Sub(a.New(c)) }
func DivC[F Number[F]](a F, c float64) F { return a.Div(a.New(c)) }

// Sum folds a slice of F with Add, starting from the realization's zero.
func Sum[F Number[F]](xs []F) F {
	if len(xs) == 0 {
		var zero F
		return zero
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = acc.Add(x)
	}
	return acc
}
