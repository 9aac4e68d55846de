// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the update rules used to train dense networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Optimizers receive named, flattened gradients and return one additive
// delta per parameter. A Network adds the deltas to its layers, so every
// optimizer must return a descending step (for plain SGD, -lr * grad).
//
// # Basic Usage
//
//	net, err := nn.New(nn.Config{
//	    BatchSize: 20,
//	    Layers:    layers,
//	    Optimizer: optim.NewAdam(optim.AdamConfig{}),
//	})
//
// The learning rate passed to Network.Train replaces the optimizer's own.
package optim
