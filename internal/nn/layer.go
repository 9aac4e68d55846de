package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/densenet/internal/linalg"
)

// Layer implements one fully connected (dense) transition between two
// neuron layers.
//
// Performs the transformation: y = f(x · W + b)
// where:
//   - x is the input with shape [batch_size, inputs]
//   - W is the weight matrix with shape [inputs, outputs]
//   - b is the bias vector with shape [outputs], added to every row
//   - f is the layer's Activation
//   - y is the output with shape [batch_size, outputs]
//
// Weights and biases are initialized uniformly in [-1, 1) and change only
// through Update (or SetParameters).
type Layer struct {
	weights    *linalg.Matrix // [inputs, outputs]
	biases     *linalg.Vector // [outputs]
	activation Activation
}

// ForwardResult is the outcome of a batched forward pass through one layer.
type ForwardResult struct {
	Pre  *linalg.Matrix // x · W + b
	Post *linalg.Matrix // f(Pre)
}

// NewLayer creates a new Layer with random parameters drawn from rng.
//
// Returns ErrInvalidDimension if inputs or outputs is < 1 and
// ErrUnknownActivation if act is not a known variant.
func NewLayer(inputs, outputs int, act Activation, rng *rand.Rand) (*Layer, error) {
	if !act.Valid() {
		return nil, fmt.Errorf("new layer: %v: %w", act, ErrUnknownActivation)
	}
	weights, err := linalg.NewMatrix(inputs, outputs)
	if err != nil {
		return nil, fmt.Errorf("new layer weights: %w", err)
	}
	biases, err := linalg.NewVector(outputs)
	if err != nil {
		return nil, fmt.Errorf("new layer biases: %w", err)
	}
	Uniform(weights, rng)
	UniformVector(biases, rng)

	return &Layer{
		weights:    weights,
		biases:     biases,
		activation: act,
	}, nil
}

// Inputs returns the number of input features.
func (l *Layer) Inputs() int {
	return l.weights.Rows()
}

// Outputs returns the number of output features.
func (l *Layer) Outputs() int {
	return l.weights.Cols()
}

// Activation returns the bound activation.
func (l *Layer) Activation() Activation {
	return l.activation
}

// Weights returns a copy of the weight matrix.
func (l *Layer) Weights() *linalg.Matrix {
	return l.weights.Clone()
}

// Biases returns a copy of the bias vector.
func (l *Layer) Biases() *linalg.Vector {
	return l.biases.Clone()
}

// SetParameters replaces weights and biases with copies of w and b.
func (l *Layer) SetParameters(w *linalg.Matrix, b *linalg.Vector) error {
	if err := l.checkShapes("set parameters", w, b); err != nil {
		return err
	}
	l.weights = w.Clone()
	l.biases = b.Clone()
	return nil
}

// ForwardBatch computes the layer output for a batch, one sample per row.
//
// Returns both the pre-activation sum and the activated output.
func (l *Layer) ForwardBatch(input *linalg.Matrix) (ForwardResult, error) {
	z, err := input.Mul(l.weights)
	if err != nil {
		return ForwardResult{}, fmt.Errorf("layer forward: %w", err)
	}
	z, err = z.BroadcastAdd(l.biases)
	if err != nil {
		return ForwardResult{}, fmt.Errorf("layer forward: %w", err)
	}
	return ForwardResult{Pre: z, Post: z.Apply(l.activation.Apply)}, nil
}

// Forward computes the activated output for a single sample.
func (l *Layer) Forward(input *linalg.Vector) (*linalg.Vector, error) {
	z, err := input.MulMat(l.weights)
	if err != nil {
		return nil, fmt.Errorf("layer forward: %w", err)
	}
	if err := z.AddInPlace(l.biases); err != nil {
		return nil, fmt.Errorf("layer forward: %w", err)
	}
	return z.Apply(l.activation.Apply), nil
}

// Update adds dW to the weights and db to the biases in place.
//
// The caller decides the direction of the step; Update never negates.
// Shapes are validated before anything is mutated.
func (l *Layer) Update(dW *linalg.Matrix, db *linalg.Vector) error {
	if err := l.checkShapes("update", dW, db); err != nil {
		return err
	}
	if err := l.weights.AddInPlace(dW); err != nil {
		return err
	}
	return l.biases.AddInPlace(db)
}

func (l *Layer) checkShapes(op string, w *linalg.Matrix, b *linalg.Vector) error {
	wr, wc := w.Dims()
	if wr != l.weights.Rows() || wc != l.weights.Cols() {
		return fmt.Errorf("layer %s: weights %dx%d, want %dx%d: %w",
			op, wr, wc, l.weights.Rows(), l.weights.Cols(), ErrDimensionMismatch)
	}
	if b.Len() != l.biases.Len() {
		return fmt.Errorf("layer %s: biases %d, want %d: %w",
			op, b.Len(), l.biases.Len(), ErrDimensionMismatch)
	}
	return nil
}
