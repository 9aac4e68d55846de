package linalg

import (
	"errors"
	"fmt"
)

// Common errors.
//
// Every failure returned by this package wraps exactly one of these values,
// so callers can branch with errors.Is regardless of the operation context.
var (
	ErrInvalidDimension  = errors.New("invalid dimension: sizes must be >= 1")
	ErrOutOfRange        = errors.New("index out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmptyInput        = errors.New("empty input")
)

// shapeError reports a DimensionMismatch between two operand shapes.
func shapeError(op string, a, b shape) error {
	return fmt.Errorf("%s: %v vs %v: %w", op, a, b, ErrDimensionMismatch)
}

// shape is a rows×cols pair used for error messages.
type shape [2]int

func (s shape) String() string {
	return fmt.Sprintf("%dx%d", s[0], s[1])
}
