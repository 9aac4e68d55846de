// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/densenet/internal/optim"
)

// Optimizer turns gradients into additive parameter deltas.
type Optimizer = optim.Optimizer

// Param is the flattened gradient of one named parameter.
type Param = optim.Param

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	net, _ := nn.New(nn.Config{
//	    BatchSize: 20,
//	    Layers:    layers,
//	    Optimizer: optim.NewSGD(optim.SGDConfig{Momentum: 0.9}),
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
