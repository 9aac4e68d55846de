package nn

import (
	"fmt"
	"math"
	"strings"
)

// Activation is the element-wise non-linearity bound to a Layer.
//
// The set is closed: every variant has an entry in the activation table and
// dispatch is a table lookup, not an interface call. Activations are plain
// values, so sharing one between layers is a copy.
type Activation uint8

// Supported activations.
const (
	Identity Activation = iota
	ReLU
	Sigmoid
	Tanh
)

// activationFuncs holds the three views of one activation.
//
// derivative is taken with respect to the pre-activation input x.
// fromOutput is the same derivative expressed through y = apply(x), which is
// what the backward pass has cached.
type activationFuncs struct {
	name       string
	apply      func(x float64) float64
	derivative func(x float64) float64
	fromOutput func(y float64) float64
}

var activationTable = [...]activationFuncs{
	Identity: {
		name:       "identity",
		apply:      func(x float64) float64 { return x },
		derivative: func(float64) float64 { return 1 },
		fromOutput: func(float64) float64 { return 1 },
	},
	ReLU: {
		name:  "relu",
		apply: func(x float64) float64 { return math.Max(0, x) },
		derivative: func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		},
		// relu(x) > 0 exactly when x > 0.
		fromOutput: func(y float64) float64 {
			if y > 0 {
				return 1
			}
			return 0
		},
	},
	Sigmoid: {
		name:  "sigmoid",
		apply: sigmoid,
		derivative: func(x float64) float64 {
			s := sigmoid(x)
			return s * (1 - s)
		},
		fromOutput: func(y float64) float64 { return y * (1 - y) },
	},
	Tanh: {
		name:  "tanh",
		apply: math.Tanh,
		derivative: func(x float64) float64 {
			t := math.Tanh(x)
			return 1 - t*t
		},
		fromOutput: func(y float64) float64 { return 1 - y*y },
	},
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Valid reports whether a names a known activation.
func (a Activation) Valid() bool {
	return int(a) < len(activationTable)
}

func (a Activation) funcs() activationFuncs {
	if !a.Valid() {
		panic(fmt.Sprintf("nn: unknown activation %d", uint8(a)))
	}
	return activationTable[a]
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	return a.funcs().apply(x)
}

// Derivative evaluates d apply / dx at the pre-activation input x.
//
// For Sigmoid this is σ(x)·(1−σ(x)); for ReLU it is 1 when x > 0, else 0.
func (a Activation) Derivative(x float64) float64 {
	return a.funcs().derivative(x)
}

// DerivativeFromOutput evaluates the same derivative given y = Apply(x)
// instead of x. For Sigmoid this is y·(1−y).
//
// Every variant in the set can recover its derivative from its output, so
// the backward pass only needs the cached layer outputs.
func (a Activation) DerivativeFromOutput(y float64) float64 {
	return a.funcs().fromOutput(y)
}

// String returns the configuration name of the activation.
func (a Activation) String() string {
	if !a.Valid() {
		return fmt.Sprintf("activation(%d)", uint8(a))
	}
	return activationTable[a].name
}

// ParseActivation maps a configuration name to an Activation.
// Matching is case-insensitive.
func ParseActivation(name string) (Activation, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for a, f := range activationTable {
		if f.name == want {
			return Activation(a), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownActivation)
}

// MarshalText implements encoding.TextMarshaler.
func (a Activation) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%d: %w", uint8(a), ErrUnknownActivation)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so activations can be
// named directly in configuration files.
func (a *Activation) UnmarshalText(text []byte) error {
	parsed, err := ParseActivation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
