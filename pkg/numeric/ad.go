package numeric

// Tangent extracts x's derivative with respect to whichever input was
// seeded with Seed(...), if F carries one. It reports ok=false for F=F64,
// where there is no tangent to extract.
func Tangent[F Number[F]](x F) (float64, bool) {
	if d, ok := any(x).(Dual); ok {
		return d.Tangent, true
	}
	return 0, false
}
