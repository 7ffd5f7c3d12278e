package rng

import "math/rand/v2"

// Generator produces IID standard normal draws. Ziggurat is the only
// implementation; the engine builds one per tile through SubStream.
//
// TODO: add a Sobol-sequence Generator for the QMC path-generation policy
// spec.md §4.4.2 reserves as a future alternative.
type Generator interface {
	Next() float64
}

// Ziggurat is a reproducible standard-normal generator backed by
// math/rand/v2's counter-based PCG source, whose NormFloat64 implements
// the Ziggurat algorithm (Marsaglia & Tsang 2000). Two Ziggurat values
// built from the same seed pair produce bit-identical draw sequences.
type Ziggurat struct {
	r *rand.Rand
}

// NewZiggurat constructs a generator seeded deterministically from a
// single master seed.
func NewZiggurat(seed uint64) *Ziggurat {
	s1, s2 := splitSeed(seed)
	return &Ziggurat{r: rand.New(rand.NewPCG(s1, s2))}
}

// SubStream derives an independent generator for tile index i from a
// master seed, per spec.md §4.4.6's "independent RNG sub-stream seeded
// deterministically from (master seed, tile index)". Two calls with the
// same (masterSeed, tileIndex) always produce the same sub-stream.
func SubStream(masterSeed uint64, tileIndex int) *Ziggurat {
	mixed := splitMix64(masterSeed ^ (uint64(tileIndex)*0x9E3779B97F4A7C15 + 0x9E3779B97F4A7C15))
	s1, s2 := splitSeed(mixed)
	return &Ziggurat{r: rand.New(rand.NewPCG(s1, s2))}
}

// Next returns the next standard normal draw.
func (z *Ziggurat) Next() float64 { return z.r.NormFloat64() }

func splitSeed(seed uint64) (uint64, uint64) {
	a := splitMix64(seed)
	b := splitMix64(a)
	return a, b
}

// splitMix64 is the standard SplitMix64 mixing function, used here only
// to turn a single seed into two well-distributed 64-bit words for PCG's
// two-word state/stream seeding, not as a generator in its own right.
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
