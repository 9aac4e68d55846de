package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/densenet/internal/linalg"
	"github.com/born-ml/densenet/internal/nn"
)

// Helper to check if values are approximately equal.
func floatEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func mustMatrix(t *testing.T, rows [][]float64) *linalg.Matrix {
	t.Helper()
	m, err := linalg.FromRows(rows)
	require.NoError(t, err)
	return m
}

func mustVector(t *testing.T, values ...float64) *linalg.Vector {
	t.Helper()
	v, err := linalg.VectorFrom(values...)
	require.NoError(t, err)
	return v
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// TestActivation_Apply tests the forward value of every variant.
func TestActivation_Apply(t *testing.T) {
	tests := []struct {
		act  nn.Activation
		x    float64
		want float64
	}{
		{nn.Identity, -2.5, -2.5},
		{nn.ReLU, -1, 0},
		{nn.ReLU, 0, 0},
		{nn.ReLU, 3, 3},
		{nn.Sigmoid, 0, 0.5},
		{nn.Sigmoid, 2, sigmoid(2)},
		{nn.Tanh, 0, 0},
		{nn.Tanh, 1, math.Tanh(1)},
	}
	for _, tt := range tests {
		if got := tt.act.Apply(tt.x); !floatEqual(got, tt.want, 1e-12) {
			t.Errorf("%v.Apply(%g) = %g, want %g", tt.act, tt.x, got, tt.want)
		}
	}
}

// TestActivation_DerivativeFromOutput tests that both derivative forms agree
// for every variant and against a central difference.
func TestActivation_DerivativeFromOutput(t *testing.T) {
	const h = 1e-6
	for _, act := range []nn.Activation{nn.Identity, nn.ReLU, nn.Sigmoid, nn.Tanh} {
		for _, x := range []float64{-2, -0.7, 0.3, 1.9} {
			y := act.Apply(x)
			numeric := (act.Apply(x+h) - act.Apply(x-h)) / (2 * h)
			assert.InDelta(t, act.Derivative(x), act.DerivativeFromOutput(y), 1e-12, "%v at %g", act, x)
			assert.InDelta(t, numeric, act.Derivative(x), 1e-6, "%v at %g", act, x)
		}
	}

	// Sigmoid on its own output is y(1-y).
	assert.InDelta(t, 0.25, nn.Sigmoid.DerivativeFromOutput(0.5), 1e-15)
	assert.Equal(t, 0.0, nn.ReLU.Derivative(-1))
	assert.Equal(t, 1.0, nn.ReLU.Derivative(2))
}

func TestParseActivation(t *testing.T) {
	for _, name := range []string{"identity", "relu", "Sigmoid", " TANH "} {
		act, err := nn.ParseActivation(name)
		require.NoError(t, err, name)
		assert.True(t, act.Valid())
	}

	_, err := nn.ParseActivation("softmax")
	assert.ErrorIs(t, err, nn.ErrUnknownActivation)

	var a nn.Activation
	require.NoError(t, a.UnmarshalText([]byte("relu")))
	assert.Equal(t, nn.ReLU, a)
	text, err := nn.Tanh.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tanh", string(text))

	assert.False(t, nn.Activation(99).Valid())
	_, err = nn.Activation(99).MarshalText()
	assert.ErrorIs(t, err, nn.ErrUnknownActivation)
}

// TestLayer_Creation tests shapes and the initialization range.
func TestLayer_Creation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l, err := nn.NewLayer(4, 3, nn.Sigmoid, rng)
	require.NoError(t, err)

	assert.Equal(t, 4, l.Inputs())
	assert.Equal(t, 3, l.Outputs())
	assert.Equal(t, nn.Sigmoid, l.Activation())

	w := l.Weights()
	for r := 0; r < 4; r++ {
		for c := 0; c < 3; c++ {
			assert.GreaterOrEqual(t, w.At(r, c), -1.0)
			assert.LessOrEqual(t, w.At(r, c), 1.0)
		}
	}

	_, err = nn.NewLayer(0, 3, nn.Sigmoid, rng)
	assert.ErrorIs(t, err, nn.ErrInvalidDimension)
	_, err = nn.NewLayer(2, 3, nn.Activation(42), rng)
	assert.ErrorIs(t, err, nn.ErrUnknownActivation)
}

// TestLayer_Forward tests that batched and single forward agree with x·W + b.
func TestLayer_Forward(t *testing.T) {
	l, err := nn.NewLayer(2, 2, nn.Identity, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, l.SetParameters(
		mustMatrix(t, [][]float64{{1, 2}, {3, 4}}),
		mustVector(t, 0.5, -0.5),
	))

	res, err := l.ForwardBatch(mustMatrix(t, [][]float64{{1, 0}, {1, 1}}))
	require.NoError(t, err)
	assert.True(t, mustMatrix(t, [][]float64{{1.5, 1.5}, {4.5, 5.5}}).Equal(res.Post), "got\n%v", res.Post)
	assert.True(t, res.Pre.Equal(res.Post), "identity keeps pre == post")

	single, err := l.Forward(mustVector(t, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4.5, 5.5}, single.Slice())

	_, err = l.ForwardBatch(mustMatrix(t, [][]float64{{1, 2, 3}}))
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
}

// TestLayer_Update tests additive updates and shape validation.
func TestLayer_Update(t *testing.T) {
	l, err := nn.NewLayer(2, 1, nn.ReLU, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, l.SetParameters(mustMatrix(t, [][]float64{{1}, {2}}), mustVector(t, 3)))

	require.NoError(t, l.Update(mustMatrix(t, [][]float64{{0.5}, {-1}}), mustVector(t, 1)))
	assert.Equal(t, []float64{1.5, 1}, []float64{l.Weights().At(0, 0), l.Weights().At(1, 0)})
	assert.Equal(t, []float64{4}, l.Biases().Slice())

	// A bad bias shape must not leave the weights half-updated.
	err = l.Update(mustMatrix(t, [][]float64{{1}, {1}}), mustVector(t, 1, 2))
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
	assert.Equal(t, 1.5, l.Weights().At(0, 0))

	err = l.Update(mustMatrix(t, [][]float64{{1, 1}}), mustVector(t, 1))
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
}

func TestSquaredError(t *testing.T) {
	pred := mustMatrix(t, [][]float64{{1, 2}, {3, 4}})
	target := mustMatrix(t, [][]float64{{0, 2}, {3, 6}})

	half, err := nn.SquaredError(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, half, 1e-15)

	mse, err := nn.MeanSquaredError(pred, target)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, mse, 1e-15)

	_, err = nn.SquaredError(pred, mustMatrix(t, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
}
