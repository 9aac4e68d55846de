package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/densenet/internal/linalg"
)

// Sample is one training example: a feature row and its expected outputs.
//
// Lengths are not checked here; a sample that does not fit the network
// fails when it is stacked into a Batch.
type Sample struct {
	Inputs   []float64
	Expected []float64
}

// Batch is a group of samples stacked row-wise.
type Batch struct {
	Inputs   *linalg.Matrix // [size, inputs]
	Expected *linalg.Matrix // [size, outputs]
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return b.Inputs.Rows()
}

// NewBatch stacks samples into a Batch.
//
// Every sample must have exactly inputs features and outputs expected
// values, otherwise ErrDimensionMismatch is returned.
func NewBatch(samples []Sample, inputs, outputs int) (Batch, error) {
	if len(samples) == 0 {
		return Batch{}, fmt.Errorf("new batch: %w", ErrEmptyInput)
	}
	in, err := linalg.NewMatrix(len(samples), inputs)
	if err != nil {
		return Batch{}, fmt.Errorf("new batch inputs: %w", err)
	}
	exp, err := linalg.NewMatrix(len(samples), outputs)
	if err != nil {
		return Batch{}, fmt.Errorf("new batch expected: %w", err)
	}

	for r, s := range samples {
		if len(s.Inputs) != inputs {
			return Batch{}, fmt.Errorf("new batch: sample %d has %d inputs, want %d: %w",
				r, len(s.Inputs), inputs, ErrDimensionMismatch)
		}
		if len(s.Expected) != outputs {
			return Batch{}, fmt.Errorf("new batch: sample %d has %d outputs, want %d: %w",
				r, len(s.Expected), outputs, ErrDimensionMismatch)
		}
		for c, x := range s.Inputs {
			_ = in.Set(r, c, x)
		}
		for c, y := range s.Expected {
			_ = exp.Set(r, c, y)
		}
	}
	return Batch{Inputs: in, Expected: exp}, nil
}

// Batches partitions samples into consecutive chunks of size, preserving
// order. The last batch is short when len(samples) is not a multiple of size.
func Batches(samples []Sample, size, inputs, outputs int) ([]Batch, error) {
	if size < 1 {
		return nil, fmt.Errorf("batches: size %d: %w", size, ErrInvalidDimension)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("batches: %w", ErrEmptyInput)
	}

	batches := make([]Batch, 0, (len(samples)+size-1)/size)
	for start := 0; start < len(samples); start += size {
		end := min(start+size, len(samples))
		b, err := NewBatch(samples[start:end], inputs, outputs)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// shuffled returns a reordered copy of samples; the input slice is untouched.
func shuffled(samples []Sample, rng *rand.Rand) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
