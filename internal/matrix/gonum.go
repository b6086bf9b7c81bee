package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToDense converts m to a gonum *mat.Dense (float64).
// gonum rejects empty matrices, so a zero dimension yields ErrInvalidDimension.
func (m *Matrix[T]) ToDense() (*mat.Dense, error) {
	if m.rows == 0 || m.cols == 0 {
		return nil, fmt.Errorf("Matrix.ToDense on %v: %w", m.Shape(), ErrInvalidDimension)
	}
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data), nil
}

// FromDense copies any gonum matrix into a new Matrix[T].
func FromDense[T Float](a mat.Matrix) *Matrix[T] {
	r, c := a.Dims()
	m := newUnchecked[T](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = T(a.At(i, j))
		}
	}
	return m
}
