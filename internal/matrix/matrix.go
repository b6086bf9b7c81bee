// Package matrix provides a dense, row-major, shape-checked 2-D matrix.
//
// Every operation that returns a matrix returns a fresh allocation; no two
// Matrix values share storage. Operations that mutate are suffixed InPlace
// and only ever mutate the receiver, after all shape checks have passed.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	b := matrix.Transpose(a)
//	c, err := matrix.MatMul(a, b)
//	if err != nil {
//	    // errors.Is(err, matrix.ErrInvalidArgument)
//	}
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a dense rows×cols matrix of T stored in a flat row-major slice.
type Matrix[T Float] struct {
	rows int
	cols int
	data []T // len(data) == rows*cols
}

// New creates a zero-filled rows×cols matrix.
// Returns ErrInvalidDimension if either dimension is negative.
func New[T Float](rows, cols int) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("matrix.New(%d,%d): %w", rows, cols, ErrInvalidDimension)
	}
	return &Matrix[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}, nil
}

// newUnchecked allocates a matrix for dimensions already known to be valid.
func newUnchecked[T Float](rows, cols int) *Matrix[T] {
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromRows builds a matrix from a rectangular nested slice.
//
// The column count is taken from the first row; any row of a different
// length yields ErrInvalidArgument. An empty input yields a 0×0 matrix.
// The values are copied.
func FromRows[T Float](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return newUnchecked[T](0, 0), nil
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix.FromRows: row %d has %d elements, want %d: %w",
				i, len(row), cols, ErrInvalidArgument)
		}
	}

	m := newUnchecked[T](len(rows), cols)
	for i, row := range rows {
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// FromSlice builds a rows×cols matrix from row-major data. The slice is copied.
func FromSlice[T Float](rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("matrix.FromSlice(%d,%d): %w", rows, cols, ErrInvalidDimension)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix.FromSlice: shape %v requires %d elements, got %d: %w",
			Shape{rows, cols}, rows*cols, len(data), ErrInvalidArgument)
	}
	m := newUnchecked[T](rows, cols)
	copy(m.data, data)
	return m, nil
}

// ColumnVector returns an n×1 matrix holding v.
func ColumnVector[T Float](v []T) *Matrix[T] {
	m := newUnchecked[T](len(v), 1)
	copy(m.data, v)
	return m
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int {
	return m.cols
}

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() Shape {
	return Shape{m.rows, m.cols}
}

func (m *Matrix[T]) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, indexErrorf(method, row, col, m.Shape())
	}
	return row*m.cols + col, nil
}

// At returns the element at (row, col), or ErrOutOfRange.
func (m *Matrix[T]) At(row, col int) (T, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col), or returns ErrOutOfRange.
func (m *Matrix[T]) Set(row, col int, v T) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// RowAt returns a new 1×cols matrix copying row i.
func (m *Matrix[T]) RowAt(i int) (*Matrix[T], error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("Matrix.RowAt(%d) on %v: %w", i, m.Shape(), ErrOutOfRange)
	}
	row := newUnchecked[T](1, m.cols)
	copy(row.data, m.data[i*m.cols:(i+1)*m.cols])
	return row, nil
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := newUnchecked[T](m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Data returns a copy of the row-major backing store.
func (m *Matrix[T]) Data() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// Flatten returns the elements in row-major order.
func (m *Matrix[T]) Flatten() []T {
	return m.Data()
}

// Equal reports whether m and other have the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Identical reports whether other has the same shape and elements, counting
// NaN as identical to NaN.
func (m *Matrix[T]) Identical(other *Matrix[T]) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, a := range m.data {
		b := other.data[i]
		if a != b && !(math.IsNaN(float64(a)) && math.IsNaN(float64(b))) {
			return false
		}
	}
	return true
}

// String renders each row as space-separated values followed by a newline.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.cols+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
