// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides dense feed-forward networks and their training loop.
//
// # Overview
//
// This package contains:
//   - Network: ordered chain of dense layers trained with mini-batch SGD
//   - Layer: affine transform x·W + b followed by an Activation
//   - Activations: Identity, ReLU, Sigmoid, Tanh
//   - Evaluation: RMSE, Pearson correlation
//   - Utilities: Sample, Batch, Normalizer
//
// # Basic Usage
//
//	import "github.com/born-ml/densenet/nn"
//
//	func main() {
//	    net, err := nn.New(nn.Config{
//	        BatchSize: 20,
//	        Layers: []nn.LayerSpec{
//	            {Inputs: 4, Outputs: 10, Activation: nn.Sigmoid},
//	            {Inputs: 10, Outputs: 1, Activation: nn.Sigmoid},
//	        },
//	        Seed:       42,
//	        Normalizer: &nn.Normalizer{Scales: []float64{30, 10, 30, 10}},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    hist, err := net.Train(samples, 500, 0.25)
//	    report, err := net.Test(samples)
//	    fmt.Println(report) // rmse=... correlation=...
//	}
//
// # Training
//
// Train minimizes L = ½ Σ (prediction - target)² summed over each batch.
// Every epoch reshuffles the samples, splits them into batches and applies
// one update per batch:
//
//	pass, _ := net.Forward(batch.Inputs)          // caches every layer output
//	grads, _ := net.Backward(pass, batch.Expected) // ∂L/∂W, ∂L/∂b per layer
//	_ = net.Step(grads, lr)                        // param -= lr * grad
//
// A Pass belongs to the call that created it; the Network keeps no state
// between Forward and Backward.
//
// # Activations
//
// Activation is a closed enum. Derivative takes the pre-activation input;
// DerivativeFromOutput takes the activation's output instead and is what the
// backward pass uses:
//
//	nn.Sigmoid.DerivativeFromOutput(y) // y * (1 - y)
//	nn.ReLU.Derivative(x)              // 1 if x > 0 else 0
//
// # Logging and metrics
//
// A Network is silent until SetLogger installs a zerolog.Logger. SetObserver
// receives per-epoch losses and evaluation reports.
package nn
