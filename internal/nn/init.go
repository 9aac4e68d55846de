package nn

import (
	"math/rand"
	"time"

	"github.com/born-ml/densenet/internal/linalg"
)

// newRand returns a generator for seed, or a time-seeded one when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // Using math/rand for weight initialization and shuffling (not security-critical)
	return rand.New(rand.NewSource(seed))
}

// Uniform fills m with values drawn uniformly from [-1, 1).
func Uniform(m *linalg.Matrix, rng *rand.Rand) {
	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			// Indices are in range by construction.
			_ = m.Set(r, c, rng.Float64()*2-1)
		}
	}
}

// UniformVector fills v with values drawn uniformly from [-1, 1).
func UniformVector(v *linalg.Vector, rng *rand.Rand) {
	for i := 0; i < v.Len(); i++ {
		_ = v.Set(i, rng.Float64()*2-1)
	}
}
