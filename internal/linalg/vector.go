package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vector is a fixed-length dense vector of float64 values.
//
// The length is set at construction and never changes. Every operation that
// produces a Vector allocates fresh storage, so two distinct Vectors never
// share elements. Use Clone for an explicit deep copy.
//
// Vector implements gonum's mat.Vector (as a column), which makes it usable
// with mat.Formatted and the gonum routines that accept read-only operands.
type Vector struct {
	data []float64
}

// NewVector creates a zero-filled vector of the given size.
//
// Returns ErrInvalidDimension if size < 1.
func NewVector(size int) (*Vector, error) {
	if size < 1 {
		return nil, fmt.Errorf("new vector of size %d: %w", size, ErrInvalidDimension)
	}
	return &Vector{data: make([]float64, size)}, nil
}

// VectorFrom creates a vector holding a copy of values.
//
// Returns ErrInvalidDimension if values is empty.
func VectorFrom(values ...float64) (*Vector, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("vector from empty slice: %w", ErrInvalidDimension)
	}
	data := make([]float64, len(values))
	copy(data, values)
	return &Vector{data: data}, nil
}

// FromMatrixRow copies row r of m into a new vector of length m.Cols().
func FromMatrixRow(m *Matrix, r int) (*Vector, error) {
	return m.Row(r)
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return len(v.data)
}

// Get returns the element at index i.
func (v *Vector) Get(i int) (float64, error) {
	if err := v.check(i); err != nil {
		return 0, err
	}
	return v.data[i], nil
}

// Set stores x at index i.
func (v *Vector) Set(i int, x float64) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.data[i] = x
	return nil
}

func (v *Vector) check(i int) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("vector index %d (len %d): %w", i, len(v.data), ErrOutOfRange)
	}
	return nil
}

// Slice returns a copy of the elements.
func (v *Vector) Slice() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Clone returns a deep copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{data: v.Slice()}
}

// Equal reports whether v and o have the same length and identical elements.
func (v *Vector) Equal(o *Vector) bool {
	if len(v.data) != len(o.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Add returns v + o.
func (v *Vector) Add(o *Vector) (*Vector, error) {
	if len(v.data) != len(o.data) {
		return nil, shapeError("vector add", shape{len(v.data), 1}, shape{len(o.data), 1})
	}
	out := v.Clone()
	for i, x := range o.data {
		out.data[i] += x
	}
	return out, nil
}

// Sub returns v - o.
func (v *Vector) Sub(o *Vector) (*Vector, error) {
	if len(v.data) != len(o.data) {
		return nil, shapeError("vector sub", shape{len(v.data), 1}, shape{len(o.data), 1})
	}
	out := v.Clone()
	for i, x := range o.data {
		out.data[i] -= x
	}
	return out, nil
}

// AddInPlace adds o to v element-wise.
func (v *Vector) AddInPlace(o *Vector) error {
	if len(v.data) != len(o.data) {
		return shapeError("vector add in place", shape{len(v.data), 1}, shape{len(o.data), 1})
	}
	for i, x := range o.data {
		v.data[i] += x
	}
	return nil
}

// SubInPlace subtracts o from v element-wise.
func (v *Vector) SubInPlace(o *Vector) error {
	if len(v.data) != len(o.data) {
		return shapeError("vector sub in place", shape{len(v.data), 1}, shape{len(o.data), 1})
	}
	for i, x := range o.data {
		v.data[i] -= x
	}
	return nil
}

// Scale returns s * v.
func (v *Vector) Scale(s float64) *Vector {
	out := v.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Hadamard returns the element-wise product of v and o.
func (v *Vector) Hadamard(o *Vector) (*Vector, error) {
	if len(v.data) != len(o.data) {
		return nil, shapeError("vector hadamard", shape{len(v.data), 1}, shape{len(o.data), 1})
	}
	out := v.Clone()
	for i, x := range o.data {
		out.data[i] *= x
	}
	return out, nil
}

// Apply returns a new vector with f applied to every element.
func (v *Vector) Apply(f func(float64) float64) *Vector {
	out := &Vector{data: make([]float64, len(v.data))}
	for i, x := range v.data {
		out.data[i] = f(x)
	}
	return out
}

// MulMat treats v as a row vector and returns v·m.
//
// Requires len(v) == m.Rows(); the result has length m.Cols().
func (v *Vector) MulMat(m *Matrix) (*Vector, error) {
	if len(v.data) != m.rows {
		return nil, shapeError("vector-matrix mul", shape{1, len(v.data)}, shape{m.rows, m.cols})
	}
	out := &Vector{data: make([]float64, m.cols)}
	for i, x := range v.data {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, w := range row {
			out.data[j] += x * w
		}
	}
	return out, nil
}

// Transpose returns v as a 1×N row matrix.
func (v *Vector) Transpose() *Matrix {
	return &Matrix{rows: 1, cols: len(v.data), data: v.Slice()}
}

// Sum returns the sum of all elements.
func (v *Vector) Sum() float64 {
	var s float64
	for _, x := range v.data {
		s += x
	}
	return s
}

// Dims implements mat.Matrix. A Vector is a column.
func (v *Vector) Dims() (r, c int) {
	return len(v.data), 1
}

// At implements mat.Matrix. It panics on out-of-range access, as gonum does.
func (v *Vector) At(i, j int) float64 {
	if j != 0 {
		panic(mat.ErrColAccess)
	}
	return v.AtVec(i)
}

// AtVec implements mat.Vector.
func (v *Vector) AtVec(i int) float64 {
	if i < 0 || i >= len(v.data) {
		panic(mat.ErrVectorAccess)
	}
	return v.data[i]
}

// T implements mat.Matrix.
func (v *Vector) T() mat.Matrix {
	return mat.Transpose{Matrix: v}
}

// String formats v as a row.
func (v *Vector) String() string {
	return fmt.Sprintf("%v", mat.Formatted(v.T()))
}
