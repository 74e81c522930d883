package synth

import "math"

// LCG parameters (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Rand is a deterministic linear congruential generator. Two instances
// constructed from the same seed produce identical streams, which is what
// makes generated datasets reproducible. Not safe for concurrent use; give
// each generation run its own instance.
type Rand struct {
	state uint32
}

// NewRand creates a generator from a 32-bit seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// SeedForCity derives a non-negative 32-bit seed from a city name using a
// rolling multiply-and-add over the character codes.
func SeedForCity(name string) uint32 {
	var h int32
	for _, c := range name {
		h = h*31 + int32(c)
	}
	if h == math.MinInt32 {
		return 0
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}

// Float64 advances the generator and returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / (1 << 32)
}

// NormFloat64 returns a normally distributed value with the given mean and
// standard deviation via the Box-Muller transform. Consumes exactly two
// uniform draws; a uniform that comes up exactly 0 is redrawn so the
// logarithm stays finite.
func (r *Rand) NormFloat64(mean, stddev float64) float64 {
	u1 := r.Float64()
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()
	for u2 == 0 {
		u2 = r.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z
}
