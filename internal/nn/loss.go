package nn

import (
	"fmt"

	"github.com/born-ml/densenet/internal/linalg"
)

// SquaredError computes the batch loss minimized by training.
//
// Loss = ½ Σ (predictions - targets)²
//
// summed over every element of the batch. Its gradient with respect to the
// predictions is simply (predictions - targets), which is the error term the
// backward pass starts from.
func SquaredError(predictions, targets *linalg.Matrix) (float64, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return 0, fmt.Errorf("squared error: %w", err)
	}
	var sum float64
	rows, cols := diff.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d := diff.At(r, c)
			sum += d * d
		}
	}
	return sum / 2, nil
}

// MeanSquaredError computes mean((predictions - targets)²) over all elements.
//
// Used for per-epoch reporting, where batches of different sizes must be
// comparable.
func MeanSquaredError(predictions, targets *linalg.Matrix) (float64, error) {
	half, err := SquaredError(predictions, targets)
	if err != nil {
		return 0, err
	}
	rows, cols := predictions.Dims()
	return 2 * half / float64(rows*cols), nil
}
