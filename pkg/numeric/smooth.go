package numeric

// SmoothMax approximates max(a, b) with a function that is differentiable
// everywhere, including at a == b. It uses the numerically stable form
// m + eps*ln(exp((a-m)/eps) + exp((b-m)/eps)) with m = max(a, b) taken on
// the primal values only (the max itself is never differentiated through —
// it is just the anchor that keeps the exponentials from overflowing).
//
// As eps -> 0+, SmoothMax(a, b, eps) -> max(a, b). This is the single
// primitive the engine uses instead of any `if a > b` branch on an F value
// inside the inner loop.
func SmoothMax[F Number[F]](a, b F, eps F) F {
	m := a
	if a.Value() < b.Value() {
		m = b
	}
	// (a-m)/eps and (b-m)/eps are both <= 0 on the primal, so exp never
	// overflows; one of the two terms is exactly exp(0) = 1.
	ea := a.Sub(m).Div(eps).Exp()
	eb := b.Sub(m).Div(eps).Exp()
	return m.Add(eps.Mul(ea.Add(eb).Log()))
}

// SmoothMin is SmoothMax applied to the negated inputs, negated back:
// min(a,b) = -max(-a,-b).
func SmoothMin[F Number[F]](a, b F, eps F) F {
	return SmoothMax(a.Neg(), b.Neg(), eps).Neg()
}

// SmoothIndicator approximates the Heaviside step 1{x > 0} with the
// logistic sigmoid 1/(1+exp(-x/eps)). As eps -> 0+ it converges to the
// step function away from x == 0, and its derivative is well-defined
// everywhere (the exact indicator's is not, at x == 0).
func SmoothIndicator[F Number[F]](x F, eps F) F {
	one := x.New(1)
	return one.Div(one.Add(x.Neg().Div(eps).Exp()))
}

// SmoothAbs approximates |x| as eps*ln(exp(x/eps) + exp(-x/eps)), which is
// differentiable at x == 0 (unlike the exact absolute value). Convergence
// to |x| holds as eps -> 0+. It is evaluated as SmoothMax(x, -x, eps),
// the same quantity in SmoothMax's overflow-free form.
func SmoothAbs[F Number[F]](x F, eps F) F {
	return SmoothMax(x, x.Neg(), eps)
}
