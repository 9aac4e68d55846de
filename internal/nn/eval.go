package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/densenet/internal/linalg"
)

// Report summarizes how well predictions track their targets.
type Report struct {
	RMSE        float64
	Correlation float64
}

// String formats the report the way the CLI prints it.
func (r Report) String() string {
	return fmt.Sprintf("rmse=%.6f correlation=%.6f", r.RMSE, r.Correlation)
}

// pairs walks every element pair of predicted and expected.
//
// Fails with ErrDimensionMismatch if the counts or any pair's lengths differ,
// and with ErrEmptyInput if there are no elements at all.
func pairs(op string, predicted, expected []*linalg.Vector, f func(p, e float64)) (int, error) {
	if len(predicted) != len(expected) {
		return 0, fmt.Errorf("%s: %d predictions for %d targets: %w",
			op, len(predicted), len(expected), ErrDimensionMismatch)
	}
	n := 0
	for i := range predicted {
		if predicted[i].Len() != expected[i].Len() {
			return 0, fmt.Errorf("%s: pair %d has lengths %d and %d: %w",
				op, i, predicted[i].Len(), expected[i].Len(), ErrDimensionMismatch)
		}
		for j := 0; j < predicted[i].Len(); j++ {
			f(predicted[i].AtVec(j), expected[i].AtVec(j))
		}
		n += predicted[i].Len()
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}
	return n, nil
}

// RMSE returns the root of the mean squared element error.
func RMSE(predicted, expected []*linalg.Vector) (float64, error) {
	var sum float64
	n, err := pairs("rmse", predicted, expected, func(p, e float64) {
		d := p - e
		sum += d * d
	})
	if err != nil {
		return 0, err
	}
	return math.Sqrt(sum / float64(n)), nil
}

// Correlation returns the Pearson correlation over all flattened elements.
//
// A constant series has no defined correlation; it yields 0 rather than an
// error.
func Correlation(predicted, expected []*linalg.Vector) (float64, error) {
	// The sums run over values shifted by the first pair, so a large common
	// offset does not cancel away the variance. A constant series shifts to
	// exact zeros.
	var sx, sy, sxx, syy, sxy float64
	var x0, y0 float64
	first := true
	n, err := pairs("correlation", predicted, expected, func(x, y float64) {
		if first {
			x0, y0, first = x, y, false
		}
		dx, dy := x-x0, y-y0
		sx += dx
		sy += dy
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	})
	if err != nil {
		return 0, err
	}

	fn := float64(n)
	varX := fn*sxx - sx*sx
	varY := fn*syy - sy*sy
	if varX <= 0 || varY <= 0 {
		return 0, nil
	}
	return (fn*sxy - sx*sy) / math.Sqrt(varX*varY), nil
}

// Evaluate computes both metrics.
func Evaluate(predicted, expected []*linalg.Vector) (Report, error) {
	rmse, err := RMSE(predicted, expected)
	if err != nil {
		return Report{}, err
	}
	corr, err := Correlation(predicted, expected)
	if err != nil {
		return Report{}, err
	}
	return Report{RMSE: rmse, Correlation: corr}, nil
}
