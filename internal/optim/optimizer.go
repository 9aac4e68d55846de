// Package optim implements the parameter update rules used to train dense
// networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers never touch parameters directly. They turn gradients into
// additive deltas, and the caller adds each delta to its parameter:
//
//	deltas := optimizer.Step(params)
//	for i, p := range params {
//	    layer.Update(..., deltas[i]) // param += delta
//	}
//
// Every rule descends: for plain SGD, delta = -lr * grad.
package optim

// Param is the gradient of one named parameter tensor, flattened row-major.
//
// Name identifies the parameter across steps (e.g. "0.weight", "0.bias")
// so stateful optimizers can keep per-parameter buffers.
type Param struct {
	Name string
	Grad []float64
}

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Turn one set of gradients into additive parameter deltas
//   - LR / SetLR: Get and set the learning rate (for scheduling)
type Optimizer interface {
	// Step returns one delta per param, in the same order and with the same
	// lengths as the gradients.
	Step(params []Param) [][]float64

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}
