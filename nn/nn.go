// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/densenet/internal/linalg"
	"github.com/born-ml/densenet/internal/nn"
)

// Network is a feed-forward chain of dense layers.
type Network = nn.Network

// Config holds everything needed to build a Network.
type Config = nn.Config

// LayerSpec describes one layer of the topology.
type LayerSpec = nn.LayerSpec

// New builds a Network with randomly initialized parameters.
//
// Example:
//
//	net, err := nn.New(nn.Config{
//	    BatchSize: 20,
//	    Layers:    []nn.LayerSpec{{Inputs: 4, Outputs: 1, Activation: nn.Sigmoid}},
//	})
func New(cfg Config) (*Network, error) {
	return nn.New(cfg)
}

// Layer is one affine transform plus activation.
type Layer = nn.Layer

// NewLayer creates a layer with weights and biases drawn uniformly from [-1, 1).
func NewLayer(inputs, outputs int, act Activation, rng *rand.Rand) (*Layer, error) {
	return nn.NewLayer(inputs, outputs, act, rng)
}

// Activations

// Activation is an element-wise non-linearity.
type Activation = nn.Activation

// Supported activations.
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
	Sigmoid  = nn.Sigmoid
	Tanh     = nn.Tanh
)

// ParseActivation maps a name such as "sigmoid" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Training data

// Sample is one training example.
type Sample = nn.Sample

// Batch is a group of samples stacked row-wise.
type Batch = nn.Batch

// Batches partitions samples into consecutive chunks of size.
func Batches(samples []Sample, size, inputs, outputs int) ([]Batch, error) {
	return nn.Batches(samples, size, inputs, outputs)
}

// Normalizer divides each input feature by a fixed scale.
type Normalizer = nn.Normalizer

// Training state

// Pass holds the intermediate values of one forward pass.
type Pass = nn.Pass

// Gradient holds ∂L/∂W and ∂L/∂b of one layer.
type Gradient = nn.Gradient

// History is the outcome of one Train call.
type History = nn.History

// Observer receives training progress.
type Observer = nn.Observer

// Evaluation

// Report summarizes RMSE and correlation.
type Report = nn.Report

// RMSE returns the root mean squared element error.
func RMSE(predicted, expected []*linalg.Vector) (float64, error) {
	return nn.RMSE(predicted, expected)
}

// Correlation returns the Pearson correlation over all elements.
func Correlation(predicted, expected []*linalg.Vector) (float64, error) {
	return nn.Correlation(predicted, expected)
}

// Errors

// Errors returned by network construction and training.
var (
	ErrInvalidDimension  = nn.ErrInvalidDimension
	ErrOutOfRange        = nn.ErrOutOfRange
	ErrDimensionMismatch = nn.ErrDimensionMismatch
	ErrEmptyInput        = nn.ErrEmptyInput
	ErrTopology          = nn.ErrTopology
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrInvalidConfig     = nn.ErrInvalidConfig
)
