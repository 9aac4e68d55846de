package nn

import (
	"fmt"

	"github.com/born-ml/densenet/internal/linalg"
)

// Normalizer scales input features into the range the network trains on.
// Feature i is divided by Scales[i].
//
// A nil *Normalizer leaves inputs unchanged.
type Normalizer struct {
	Scales []float64
}

// Validate reports whether the normalizer fits a network with the given
// number of inputs.
func (n *Normalizer) Validate(inputs int) error {
	if n == nil {
		return nil
	}
	if len(n.Scales) != inputs {
		return fmt.Errorf("normalizer: %d scales for %d inputs: %w",
			len(n.Scales), inputs, ErrDimensionMismatch)
	}
	for i, s := range n.Scales {
		if s == 0 {
			return fmt.Errorf("normalizer: scale %d is zero: %w", i, ErrInvalidConfig)
		}
	}
	return nil
}

// Normalize returns a scaled copy of input.
func (n *Normalizer) Normalize(input []float64) ([]float64, error) {
	out := make([]float64, len(input))
	copy(out, input)
	if n == nil {
		return out, nil
	}
	if len(input) != len(n.Scales) {
		return nil, fmt.Errorf("normalize: %d features, want %d: %w",
			len(input), len(n.Scales), ErrDimensionMismatch)
	}
	for i := range out {
		out[i] /= n.Scales[i]
	}
	return out, nil
}

// NormalizeMatrix returns a copy of m with every row normalized.
func (n *Normalizer) NormalizeMatrix(m *linalg.Matrix) (*linalg.Matrix, error) {
	if n == nil {
		return m.Clone(), nil
	}
	if m.Cols() != len(n.Scales) {
		return nil, fmt.Errorf("normalize: %d features, want %d: %w",
			m.Cols(), len(n.Scales), ErrDimensionMismatch)
	}
	out := m.Clone()
	for r := 0; r < out.Rows(); r++ {
		for c, s := range n.Scales {
			_ = out.Set(r, c, out.At(r, c)/s)
		}
	}
	return out, nil
}

// Denormalize maps network outputs back to target units.
//
// Targets already live in the network's output range, so this is the
// identity; it exists so callers do not bake that assumption in.
func (n *Normalizer) Denormalize(output *linalg.Vector) *linalg.Vector {
	return output
}
