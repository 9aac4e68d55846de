// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides the dense matrix and vector types the network is
// built on.
//
// # Overview
//
// This package contains:
//   - Matrix: row-major R×C matrix of float64
//   - Vector: fixed-length vector of float64
//   - Sentinel errors for shape and index failures
//
// Both types are deep-value containers: constructors copy their input and
// every arithmetic operation returns a new container unless its name ends in
// InPlace. Both implement gonum's mat.Matrix, so they can be handed to any
// gonum routine:
//
//	a, _ := linalg.FromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := linalg.FromRows([][]float64{{5}, {6}})
//	c, _ := a.Mul(b)          // 2×1
//	fmt.Println(c)            // formatted with mat.Formatted
//
//	var d mat.Dense
//	d.Mul(a, b)               // same product through gonum
//
// # Errors
//
// Shape failures wrap ErrDimensionMismatch and name both operand shapes,
// index failures wrap ErrOutOfRange, and empty shapes wrap
// ErrInvalidDimension. Use errors.Is to test for them.
package linalg
