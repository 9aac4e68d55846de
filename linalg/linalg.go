// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/densenet/internal/linalg"
)

// Matrix is a dense row-major matrix.
type Matrix = linalg.Matrix

// Vector is a dense vector.
type Vector = linalg.Vector

// Errors returned by matrix and vector operations.
var (
	ErrInvalidDimension  = linalg.ErrInvalidDimension
	ErrOutOfRange        = linalg.ErrOutOfRange
	ErrDimensionMismatch = linalg.ErrDimensionMismatch
	ErrEmptyInput        = linalg.ErrEmptyInput
)

// NewMatrix creates a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	return linalg.NewMatrix(rows, cols)
}

// FromRows creates a matrix from a slice of equal-length rows.
//
// Example:
//
//	m, err := linalg.FromRows([][]float64{
//	    {1, 2, 3},
//	    {4, 5, 6},
//	})
func FromRows(rows [][]float64) (*Matrix, error) {
	return linalg.FromRows(rows)
}

// FromGonum copies any gonum matrix.
func FromGonum(a mat.Matrix) (*Matrix, error) {
	return linalg.FromGonum(a)
}

// NewVector creates a zero-filled vector of length size.
func NewVector(size int) (*Vector, error) {
	return linalg.NewVector(size)
}

// VectorFrom creates a vector holding a copy of values.
func VectorFrom(values ...float64) (*Vector, error) {
	return linalg.VectorFrom(values...)
}

// FromMatrixRow copies row r of m into a new vector.
func FromMatrixRow(m *Matrix, r int) (*Vector, error) {
	return linalg.FromMatrixRow(m, r)
}
