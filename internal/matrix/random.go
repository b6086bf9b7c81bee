package matrix

import "math/rand"

// Source produces uniform float64 values in [0, 1).
// *rand.Rand satisfies it; tests inject their own.
type Source interface {
	Float64() float64
}

// NewSource returns a generator seeded with seed, or with a fresh
// non-deterministic seed when seed is negative.
func NewSource(seed int64) *rand.Rand {
	if seed >= 0 {
		return rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic seed requested for reproducibility
	}
	return rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // Weight initialization, not security-critical
}

// Randomize fills m with values drawn uniformly from [0, 1) using a
// freshly seeded generator, so consecutive calls differ.
func (m *Matrix[T]) Randomize() {
	m.RandomizeWith(NewSource(-1))
}

// RandomizeWith fills m with values drawn uniformly from [0, 1) using src.
func (m *Matrix[T]) RandomizeWith(src Source) {
	for i := range m.data {
		m.data[i] = uniform[T](src)
	}
}

// uniform draws from src until the value converted to T stays below 1;
// rounding to float32 can otherwise produce exactly 1.
func uniform[T Float](src Source) T {
	for {
		if v := T(src.Float64()); v < 1 {
			return v
		}
	}
}
