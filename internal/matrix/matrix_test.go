package matrix

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filled returns a rows×cols matrix with every element set to v.
func filled(t *testing.T, rows, cols int, v float64) *Matrix[float64] {
	t.Helper()
	m, err := New[float64](rows, cols)
	require.NoError(t, err)
	m.AddScalarInPlace(v)
	return m
}

// sequential returns a rows×cols matrix holding 1, 2, 3, ... in row-major order.
func sequential(t *testing.T, rows, cols int) *Matrix[float64] {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i + 1)
	}
	m, err := FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestNew_ZeroFilled(t *testing.T) {
	m, err := New[float64](2, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, m.Data())
}

func TestNew_EmptyDimensionsAllowed(t *testing.T) {
	m, err := New[float32](0, 4)
	require.NoError(t, err)
	assert.Equal(t, Shape{0, 4}, m.Shape())
	assert.Empty(t, m.Data())
}

func TestNew_NegativeDimension(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"negative rows", -1, 3},
		{"negative cols", 3, -1},
		{"both negative", -2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New[float64](tt.rows, tt.cols)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, m.Shape())
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestFromRows_CopiesInput(t *testing.T) {
	src := [][]float64{{1, 2}}
	m, err := FromRows(src)
	require.NoError(t, err)

	src[0][0] = 99
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestFromRows_Ragged(t *testing.T) {
	for _, rows := range [][][]float64{
		{{1, 2, 3}, {4, 5}},
		{{1}, {2, 3}},
		{{1, 2}, {3, 4}, {}},
	} {
		_, err := FromRows(rows)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestFromRows_Empty(t *testing.T) {
	m, err := FromRows[float64](nil)
	require.NoError(t, err)
	assert.Equal(t, Shape{0, 0}, m.Shape())
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	_, err := FromSlice(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromSlice(-1, 2, []float64{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestAtSet_OutOfRange(t *testing.T) {
	m := filled(t, 2, 3, 0)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {5, 5}} {
		_, err := m.At(idx[0], idx[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "At%v", idx)

		err = m.Set(idx[0], idx[1], 1)
		assert.ErrorIs(t, err, ErrOutOfRange, "Set%v", idx)
	}

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestRowAt(t *testing.T) {
	m := sequential(t, 3, 4)

	for i := 0; i < 3; i++ {
		row, err := m.RowAt(i)
		require.NoError(t, err)
		assert.Equal(t, Shape{1, 4}, row.Shape())
		for j := 0; j < 4; j++ {
			want, _ := m.At(i, j)
			got, _ := row.At(0, j)
			assert.Equal(t, want, got)
		}
	}

	_, err := m.RowAt(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = m.RowAt(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRowAt_IsIndependentCopy(t *testing.T) {
	m := sequential(t, 2, 2)
	row, err := m.RowAt(0)
	require.NoError(t, err)

	require.NoError(t, row.Set(0, 0, -5))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestClone_NoAliasing(t *testing.T) {
	m := sequential(t, 2, 2)
	c := m.Clone()
	require.True(t, c.Equal(m))

	c.ScaleInPlace(10)
	assert.False(t, c.Equal(m))
	v, _ := m.At(1, 1)
	assert.Equal(t, 4.0, v)
}

func TestData_ReturnsCopy(t *testing.T) {
	m := sequential(t, 1, 3)
	d := m.Data()
	d[0] = 100
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestColumnVector(t *testing.T) {
	m := ColumnVector([]float64{1, 2, 3})
	assert.Equal(t, Shape{3, 1}, m.Shape())
	assert.Equal(t, []float64{1, 2, 3}, m.Flatten())
}

func TestString(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3.5, 4}})
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3.5 4\n", m.String())
}

func TestDTypeOf(t *testing.T) {
	type weight float32

	assert.Equal(t, Float32, DTypeOf[float32]())
	assert.Equal(t, Float64, DTypeOf[float64]())
	assert.Equal(t, Float32, DTypeOf[weight]())
	assert.Equal(t, 8, Float64.Size())

	dt, ok := ParseDataType("float32")
	assert.True(t, ok)
	assert.Equal(t, Float32, dt)
	_, ok = ParseDataType("int8")
	assert.False(t, ok)
}

func TestShapeError_Unwrap(t *testing.T) {
	a := filled(t, 2, 3, 1)
	b := filled(t, 2, 3, 1)
	_, err := MatMul(a, b)

	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "MatMul", se.Op)
	assert.Equal(t, Shape{2, 3}, se.Left)
	assert.Equal(t, Shape{2, 3}, se.Right)
	assert.Contains(t, err.Error(), "2x3")
}

func TestIdentical(t *testing.T) {
	a, err := FromRows([][]float64{{1, math.NaN()}})
	require.NoError(t, err)
	b := a.Clone()

	assert.False(t, a.Equal(b), "Equal follows IEEE comparison")
	assert.True(t, a.Identical(b))

	require.NoError(t, b.Set(0, 0, 2))
	assert.False(t, a.Identical(b))
	assert.False(t, a.Identical(Transpose(a)))
	assert.False(t, a.Identical(nil))
}
