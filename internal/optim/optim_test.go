package optim_test

import (
	"testing"

	"github.com/born-ml/densenet/internal/optim"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// applyDeltas adds deltas to params the way a layer update does.
func applyDeltas(params, deltas [][]float64) {
	for i := range params {
		for j := range params[i] {
			params[i][j] += deltas[i][j]
		}
	}
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	// Create a simple parameter: x = [2.0]
	x := [][]float64{{2.0}}

	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.0})

	// Simulate gradient: grad_x = 1.0
	deltas := optimizer.Step([]optim.Param{{Name: "x", Grad: []float64{1.0}}})
	applyDeltas(x, deltas)

	// Expected: x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if !floatEqual(x[0][0], 1.9, 1e-12) {
		t.Errorf("SGD update: got %f, want %f", x[0][0], 1.9)
	}
}

// TestSGD_DescentDirection tests that deltas always oppose the gradient.
func TestSGD_DescentDirection(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})

	grad := []float64{-2, 0, 3}
	deltas := optimizer.Step([]optim.Param{{Name: "w", Grad: grad}})

	want := []float64{1, 0, -1.5}
	for i, d := range deltas[0] {
		if !floatEqual(d, want[i], 1e-12) {
			t.Errorf("delta[%d]: got %f, want %f", i, d, want[i])
		}
	}
	if grad[0] != -2 {
		t.Error("Step must not modify the gradient")
	}
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	// Create parameter: x = [1.0]
	x := [][]float64{{1.0}}

	// Create SGD with momentum=0.9
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// First step: grad = 1.0
	applyDeltas(x, optimizer.Step([]optim.Param{{Name: "x", Grad: []float64{1.0}}}))

	// First step:
	// v_1 = 0.9 * 0 + 1.0 = 1.0
	// x_1 = 1.0 - 0.1 * 1.0 = 0.9
	if !floatEqual(x[0][0], 0.9, 1e-12) {
		t.Errorf("SGD momentum step 1: got %f, want %f", x[0][0], 0.9)
	}

	// Second step: grad = 1.0
	applyDeltas(x, optimizer.Step([]optim.Param{{Name: "x", Grad: []float64{1.0}}}))

	// Second step:
	// v_2 = 0.9 * 1.0 + 1.0 = 1.9
	// x_2 = 0.9 - 0.1 * 1.9 = 0.71
	if !floatEqual(x[0][0], 0.71, 1e-12) {
		t.Errorf("SGD momentum step 2: got %f, want %f", x[0][0], 0.71)
	}
}

// TestSGD_MomentumPerParameter tests that velocities are kept per name.
func TestSGD_MomentumPerParameter(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 1, Momentum: 0.5})

	optimizer.Step([]optim.Param{{Name: "a", Grad: []float64{1}}})
	deltas := optimizer.Step([]optim.Param{
		{Name: "a", Grad: []float64{1}},
		{Name: "b", Grad: []float64{1}},
	})

	// a: v = 0.5*1 + 1 = 1.5; b starts fresh: v = 1.
	if !floatEqual(deltas[0][0], -1.5, 1e-12) {
		t.Errorf("param a: got %f, want -1.5", deltas[0][0])
	}
	if !floatEqual(deltas[1][0], -1.0, 1e-12) {
		t.Errorf("param b: got %f, want -1.0", deltas[1][0])
	}
}

// TestSGD_GetSetLR tests learning rate getter/setter.
func TestSGD_GetSetLR(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})

	if optimizer.LR() != 0.01 {
		t.Errorf("LR: got %f, want 0.01", optimizer.LR())
	}

	optimizer.SetLR(0.001)
	if optimizer.LR() != 0.001 {
		t.Errorf("LR after SetLR: got %f, want 0.001", optimizer.LR())
	}

	if optim.NewSGD(optim.SGDConfig{}).LR() != 0.01 {
		t.Error("default LR should be 0.01")
	}
}

// TestAdam_SimpleUpdate tests Adam optimizer update.
func TestAdam_SimpleUpdate(t *testing.T) {
	// Create parameter: x = [1.0]
	x := [][]float64{{1.0}}

	// Create Adam optimizer with default hyperparameters
	optimizer := optim.NewAdam(optim.AdamConfig{
		LR:    0.001,
		Betas: [2]float64{0.9, 0.999},
		Eps:   1e-8,
	})

	// First step, gradient: grad = 1.0
	applyDeltas(x, optimizer.Step([]optim.Param{{Name: "x", Grad: []float64{1.0}}}))

	// After first step (with bias correction):
	// m_1 = 0.9 * 0 + 0.1 * 1.0 = 0.1
	// v_1 = 0.999 * 0 + 0.001 * 1.0 = 0.001
	// m_hat = 0.1 / (1 - 0.9^1) = 0.1 / 0.1 = 1.0
	// v_hat = 0.001 / (1 - 0.999^1) = 0.001 / 0.001 = 1.0
	// x_new = 1.0 - 0.001 * 1.0 / (sqrt(1.0) + 1e-8) ≈ 0.999
	if !floatEqual(x[0][0], 0.999, 1e-6) {
		t.Errorf("Adam step 1: got %f, want %f", x[0][0], 0.999)
	}
}

// TestAdam_Defaults tests that zero config values fall back to defaults.
func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(optim.AdamConfig{})
	if optimizer.LR() != 0.001 {
		t.Errorf("default LR: got %f, want 0.001", optimizer.LR())
	}

	optimizer.SetLR(0.01)
	if optimizer.LR() != 0.01 {
		t.Errorf("LR after SetLR: got %f, want 0.01", optimizer.LR())
	}
}

// TestOptimizer_Interface checks that both rules satisfy Optimizer.
func TestOptimizer_Interface(_ *testing.T) {
	var _ optim.Optimizer = optim.NewSGD(optim.SGDConfig{})
	var _ optim.Optimizer = optim.NewAdam(optim.AdamConfig{})
}
