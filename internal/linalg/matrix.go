package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a fixed-size dense matrix of float64 values.
//
// Elements live in one contiguous row-major buffer: element (r, c) is stored
// at data[r*cols+c]. Rows and columns are fixed at construction. Operations
// never alias their operands; results are always freshly allocated unless
// the method name ends in InPlace.
//
// Matrix implements gonum's mat.Matrix interface, so it can be printed with
// mat.Formatted and passed to gonum routines as a read-only operand.
//
// Example:
//
//	a, _ := linalg.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}}) // 2×3
//	b, _ := linalg.NewMatrix(3, 4)                            // 3×4, zero-filled
//	c, err := a.Mul(b)                                        // 2×4
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix creates a zero-filled rows×cols matrix.
//
// Returns ErrInvalidDimension if rows < 1 or cols < 1.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("new matrix %dx%d: %w", rows, cols, ErrInvalidDimension)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows creates a matrix from a slice of equally sized rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix from rows: %w", ErrInvalidDimension)
	}
	m, err := NewMatrix(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("matrix from rows: row %d has %d values, want %d: %w",
				r, len(row), m.cols, ErrDimensionMismatch)
		}
		copy(m.data[r*m.cols:], row)
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

func (m *Matrix) shape() shape {
	return shape{m.rows, m.cols}
}

func (m *Matrix) check(r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("matrix index (%d, %d) on %v: %w", r, c, m.shape(), ErrOutOfRange)
	}
	return nil
}

// Get returns the element at (r, c).
func (m *Matrix) Get(r, c int) (float64, error) {
	if err := m.check(r, c); err != nil {
		return 0, err
	}
	return m.data[r*m.cols+c], nil
}

// Set stores x at (r, c).
func (m *Matrix) Set(r, c int, x float64) error {
	if err := m.check(r, c); err != nil {
		return err
	}
	m.data[r*m.cols+c] = x
	return nil
}

// At implements mat.Matrix. It panics on out-of-range access, as gonum does;
// use Get for a checked read.
func (m *Matrix) At(r, c int) float64 {
	if r < 0 || r >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if c < 0 || c >= m.cols {
		panic(mat.ErrColAccess)
	}
	return m.data[r*m.cols+c]
}

// T implements mat.Matrix. It returns a lazy transposed view; use Transpose
// for a materialized copy.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) (*Vector, error) {
	if r < 0 || r >= m.rows {
		return nil, fmt.Errorf("matrix row %d on %v: %w", r, m.shape(), ErrOutOfRange)
	}
	data := make([]float64, m.cols)
	copy(data, m.data[r*m.cols:(r+1)*m.cols])
	return &Vector{data: data}, nil
}

// SetRow overwrites row r with the values of v.
func (m *Matrix) SetRow(r int, v *Vector) error {
	if r < 0 || r >= m.rows {
		return fmt.Errorf("matrix set row %d on %v: %w", r, m.shape(), ErrOutOfRange)
	}
	if v.Len() != m.cols {
		return shapeError("matrix set row", m.shape(), shape{1, v.Len()})
	}
	copy(m.data[r*m.cols:], v.data)
	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Transpose returns the cols×rows matrix with result(c, r) = m(r, c).
func (m *Matrix) Transpose() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.data[c*out.cols+r] = m.data[r*m.cols+c]
		}
	}
	return out
}

// Mul returns the matrix product m·o.
//
// Requires m.Cols() == o.Rows(); the result is m.Rows()×o.Cols().
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, shapeError("matrix mul", m.shape(), o.shape())
	}
	out := &Matrix{rows: m.rows, cols: o.cols, data: make([]float64, m.rows*o.cols)}
	// i-k-j order walks both o and out along rows.
	for i := 0; i < m.rows; i++ {
		dst := out.data[i*out.cols : (i+1)*out.cols]
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			src := o.data[k*o.cols : (k+1)*o.cols]
			for j, b := range src {
				dst[j] += a * b
			}
		}
	}
	return out, nil
}

// MulVec treats v as a column and returns m·v, a vector of length m.Rows().
func (m *Matrix) MulVec(v *Vector) (*Vector, error) {
	if m.cols != v.Len() {
		return nil, shapeError("matrix-vector mul", m.shape(), shape{v.Len(), 1})
	}
	out := &Vector{data: make([]float64, m.rows)}
	for i := 0; i < m.rows; i++ {
		var sum float64
		for j, x := range m.data[i*m.cols : (i+1)*m.cols] {
			sum += x * v.data[j]
		}
		out.data[i] = sum
	}
	return out, nil
}

// Scale returns s * m.
func (m *Matrix) Scale(s float64) *Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Add returns m + o.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	out := m.Clone()
	if err := out.AddInPlace(o); err != nil {
		return nil, err
	}
	return out, nil
}

// Sub returns m - o.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	out := m.Clone()
	if err := out.SubInPlace(o); err != nil {
		return nil, err
	}
	return out, nil
}

// AddInPlace adds o to m element-wise.
func (m *Matrix) AddInPlace(o *Matrix) error {
	if m.rows != o.rows || m.cols != o.cols {
		return shapeError("matrix add", m.shape(), o.shape())
	}
	for i, x := range o.data {
		m.data[i] += x
	}
	return nil
}

// SubInPlace subtracts o from m element-wise.
func (m *Matrix) SubInPlace(o *Matrix) error {
	if m.rows != o.rows || m.cols != o.cols {
		return shapeError("matrix sub", m.shape(), o.shape())
	}
	for i, x := range o.data {
		m.data[i] -= x
	}
	return nil
}

// Hadamard returns the element-wise product of m and o.
func (m *Matrix) Hadamard(o *Matrix) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, shapeError("matrix hadamard", m.shape(), o.shape())
	}
	out := m.Clone()
	for i, x := range o.data {
		out.data[i] *= x
	}
	return out, nil
}

// Apply returns a new matrix with f applied independently to every element.
// m is left untouched.
func (m *Matrix) Apply(f func(float64) float64) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	for i, x := range m.data {
		out.data[i] = f(x)
	}
	return out
}

// BroadcastAdd adds v to every row of m: result(r, c) = m(r, c) + v(c).
//
// Requires v.Len() == m.Cols(). This is how a bias vector is applied to a
// batch where each row is one sample.
func (m *Matrix) BroadcastAdd(v *Vector) (*Matrix, error) {
	if v.Len() != m.cols {
		return nil, shapeError("matrix broadcast add", m.shape(), shape{1, v.Len()})
	}
	out := m.Clone()
	for r := 0; r < m.rows; r++ {
		row := out.data[r*m.cols : (r+1)*m.cols]
		for c, x := range v.data {
			row[c] += x
		}
	}
	return out, nil
}

// CollapseRows sums every column: result(c) = Σ_r m(r, c).
func (m *Matrix) CollapseRows() *Vector {
	out := &Vector{data: make([]float64, m.cols)}
	for r := 0; r < m.rows; r++ {
		for c, x := range m.data[r*m.cols : (r+1)*m.cols] {
			out.data[c] += x
		}
	}
	return out
}

// AveragedVector returns the column means: result(c) = CollapseRows()(c) / Rows().
func (m *Matrix) AveragedVector() *Vector {
	out := m.CollapseRows()
	n := float64(m.rows)
	for c := range out.data {
		out.data[c] /= n
	}
	return out
}

// String formats m with gonum's matrix printer.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m))
}
