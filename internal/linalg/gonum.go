package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense returns a gonum copy of m.
func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return mat.NewDense(m.rows, m.cols, data)
}

// VecDense returns a gonum copy of v.
func (v *Vector) VecDense() *mat.VecDense {
	return mat.NewVecDense(len(v.data), v.Slice())
}

// FromGonum copies any gonum matrix into a new Matrix.
func FromGonum(a mat.Matrix) (*Matrix, error) {
	r, c := a.Dims()
	m, err := NewMatrix(r, c)
	if err != nil {
		return nil, fmt.Errorf("from gonum: %w", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = a.At(i, j)
		}
	}
	return m, nil
}
