package nn

import (
	"errors"

	"github.com/born-ml/densenet/internal/linalg"
)

// Common errors.
//
// The shape errors are the linalg sentinels, so errors.Is matches a failure
// regardless of whether it surfaced from a matrix operation or from a
// network-level check.
var (
	ErrInvalidDimension  = linalg.ErrInvalidDimension
	ErrOutOfRange        = linalg.ErrOutOfRange
	ErrDimensionMismatch = linalg.ErrDimensionMismatch
	ErrEmptyInput        = linalg.ErrEmptyInput

	ErrTopology          = errors.New("inconsistent layer topology")
	ErrUnknownActivation = errors.New("unknown activation")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
