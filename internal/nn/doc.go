// Package nn implements a feed-forward network of dense layers and its
// mini-batch training loop.
//
// This package provides:
//   - Activation: closed set of element-wise functions (Identity, ReLU, Sigmoid, Tanh)
//   - Layer: one affine transform plus activation
//   - Network: forward pass, backpropagation, SGD training and evaluation
//   - Batches / Normalizer: sample preparation
//   - RMSE / Correlation: evaluation metrics
//
// Training minimizes L = ½ Σ (prediction - target)². Backward returns the
// true gradient of L and the optimizer turns it into a descending update:
//
//	pass, _ := net.Forward(batch.Inputs)
//	grads, _ := net.Backward(pass, batch.Expected)
//	_ = net.Step(grads, lr) // param -= lr * grad
package nn
