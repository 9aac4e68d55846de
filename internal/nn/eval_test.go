package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/densenet/internal/linalg"
	"github.com/born-ml/densenet/internal/nn"
)

func vectors(t *testing.T, rows ...[]float64) []*linalg.Vector {
	t.Helper()
	out := make([]*linalg.Vector, len(rows))
	for i, r := range rows {
		out[i] = mustVector(t, r...)
	}
	return out
}

// TestRMSE_Identical tests that a perfect prediction has RMSE exactly 0.
func TestRMSE_Identical(t *testing.T) {
	v := vectors(t, []float64{0.1, 0.7}, []float64{0.3, 0.9})
	rmse, err := nn.RMSE(v, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rmse)

	corr, err := nn.Correlation(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, corr, 1e-12)
}

func TestRMSE_Known(t *testing.T) {
	pred := vectors(t, []float64{1}, []float64{2}, []float64{3}, []float64{4})
	exp := vectors(t, []float64{2}, []float64{2}, []float64{3}, []float64{2})
	rmse, err := nn.RMSE(pred, exp)
	require.NoError(t, err)
	// (1 + 0 + 0 + 4) / 4
	assert.InDelta(t, math.Sqrt(1.25), rmse, 1e-15)
}

// TestCorrelation_MatchesStats cross-checks the running-sum Pearson against
// a two-pass reference implementation.
func TestCorrelation_MatchesStats(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var xs, ys []float64
	var pred, exp []*linalg.Vector
	for i := 0; i < 50; i++ {
		x := rng.Float64()
		y := 0.6*x + 0.4*rng.Float64()
		xs, ys = append(xs, x), append(ys, y)
		pred = append(pred, mustVector(t, x))
		exp = append(exp, mustVector(t, y))
	}

	want, err := stats.Pearson(xs, ys)
	require.NoError(t, err)
	got, err := nn.Correlation(pred, exp)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	sq := make([]float64, len(xs))
	for i := range xs {
		sq[i] = (xs[i] - ys[i]) * (xs[i] - ys[i])
	}
	meanSq, err := stats.Mean(sq)
	require.NoError(t, err)
	rmse, err := nn.RMSE(pred, exp)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(meanSq), rmse, 1e-12)
}

// TestCorrelation_ZeroVariance tests that a constant series yields exactly 0.
func TestCorrelation_ZeroVariance(t *testing.T) {
	pred := vectors(t, []float64{0.1}, []float64{0.1}, []float64{0.1})
	exp := vectors(t, []float64{1}, []float64{2}, []float64{3})

	corr, err := nn.Correlation(pred, exp)
	require.NoError(t, err)
	assert.Equal(t, 0.0, corr)

	corr, err = nn.Correlation(exp, pred)
	require.NoError(t, err)
	assert.Equal(t, 0.0, corr)
}

func TestEvaluate_Errors(t *testing.T) {
	a := vectors(t, []float64{1, 2})
	b := vectors(t, []float64{1})

	_, err := nn.RMSE(a, b)
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
	_, err = nn.Correlation(a, vectors(t, []float64{1, 2}, []float64{3, 4}))
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)

	_, err = nn.RMSE(nil, nil)
	assert.ErrorIs(t, err, nn.ErrEmptyInput)
	_, err = nn.Correlation(nil, nil)
	assert.ErrorIs(t, err, nn.ErrEmptyInput)

	report, err := nn.Evaluate(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.RMSE)
	assert.Contains(t, report.String(), "rmse=0.000000")
}

// TestCorrelation_LargeOffset tests that a common offset far larger than
// the spread does not cancel the variance away.
func TestCorrelation_LargeOffset(t *testing.T) {
	const offset = 1e8
	xs := []float64{0.5, 1.25, 2, 3.5, 0.75, 4}
	ys := []float64{2, 0.5, 3, 1.5, 2.5, 1}

	var pred, exp []*linalg.Vector
	for i := range xs {
		pred = append(pred, mustVector(t, offset+xs[i]))
		exp = append(exp, mustVector(t, offset+ys[i]))
	}

	want, err := stats.Pearson(xs, ys)
	require.NoError(t, err)
	got, err := nn.Correlation(pred, exp)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	self, err := nn.Correlation(pred, pred)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, 1e-12)
}
