package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatMul_Known(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := FromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := MatMul(a, b)
	require.NoError(t, err)

	want, _ := FromRows([][]float64{{58, 64}, {139, 154}})
	assert.True(t, c.Equal(want), "got\n%v", c)
}

func TestMatMul_InnerMismatch(t *testing.T) {
	a := filled(t, 2, 3, 1)
	b := filled(t, 2, 2, 1)

	c, err := MatMul(a, b)
	assert.Nil(t, c, "a mismatched product must not return a matrix")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatMul_AgreesWithGonum(t *testing.T) {
	src := NewSource(7)
	a := filled(t, 5, 4, 0)
	b := filled(t, 4, 6, 0)
	a.RandomizeWith(src)
	b.RandomizeWith(src)

	got, err := MatMul(a, b)
	require.NoError(t, err)

	ad, err := a.ToDense()
	require.NoError(t, err)
	bd, err := b.ToDense()
	require.NoError(t, err)
	var want mat.Dense
	want.Mul(ad, bd)

	gd, err := got.ToDense()
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(gd, &want, 1e-12))
}

func TestTransposeOfProduct(t *testing.T) {
	src := NewSource(11)
	for _, dims := range [][3]int{{1, 1, 1}, {2, 3, 4}, {4, 1, 3}, {3, 5, 2}} {
		a := filled(t, dims[0], dims[1], 0)
		b := filled(t, dims[1], dims[2], 0)
		a.RandomizeWith(src)
		b.RandomizeWith(src)

		ab, err := MatMul(a, b)
		require.NoError(t, err)
		btat, err := MatMul(Transpose(b), Transpose(a))
		require.NoError(t, err)

		left, _ := Transpose(ab).ToDense()
		right, _ := btat.ToDense()
		assert.True(t, mat.EqualApprox(left, right, 1e-12), "dims %v", dims)
	}
}

func TestTranspose_Involution(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 3}, {3, 2}, {1, 5}, {0, 3}} {
		a := sequential(t, dims[0], dims[1])
		assert.True(t, Transpose(Transpose(a)).Equal(a), "dims %v", dims)
	}
}

func TestTranspose_Elements(t *testing.T) {
	a := sequential(t, 2, 3)
	tr := Transpose(a)
	require.Equal(t, Shape{3, 2}, tr.Shape())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			want, _ := a.At(i, j)
			got, _ := tr.At(j, i)
			assert.Equal(t, want, got)
		}
	}
}

func TestSub(t *testing.T) {
	a := sequential(t, 2, 2)
	b := filled(t, 2, 2, 1)

	c, err := Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, c.Data())

	// Operands are untouched.
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Data())
}

func TestSub_SelfIsZero(t *testing.T) {
	a := filled(t, 3, 4, 0)
	a.RandomizeWith(NewSource(3))

	z, err := Sub(a, a)
	require.NoError(t, err)
	zero := filled(t, 3, 4, 0)
	assert.True(t, z.Equal(zero))
}

func TestSub_ShapeMismatch(t *testing.T) {
	_, err := Sub(filled(t, 2, 2, 1), filled(t, 2, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMap(t *testing.T) {
	a := sequential(t, 2, 2)
	sq := Map(a, func(v float64) float64 { return v * v })

	assert.Equal(t, []float64{1, 4, 9, 16}, sq.Data())
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Data())

	a.MapInPlace(func(v float64) float64 { return -v })
	assert.Equal(t, []float64{-1, -2, -3, -4}, a.Data())
}

func TestHConcat(t *testing.T) {
	a := filled(t, 2, 3, 1)
	b := filled(t, 2, 2, 2)

	c, err := HConcat(a, b)
	require.NoError(t, err)
	require.Equal(t, Shape{2, 5}, c.Shape())

	for i := 0; i < 2; i++ {
		for j := 0; j < 5; j++ {
			v, _ := c.At(i, j)
			if j < 3 {
				assert.Equal(t, 1.0, v, "(%d,%d)", i, j)
			} else {
				assert.Equal(t, 2.0, v, "(%d,%d)", i, j)
			}
		}
	}
}

func TestHConcat_WiderRight(t *testing.T) {
	a := sequential(t, 2, 1)
	b := sequential(t, 2, 3)

	c, err := HConcat(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2, 3, 2, 4, 5, 6}, c.Data())
}

func TestHConcat_RowMismatch(t *testing.T) {
	_, err := HConcat(filled(t, 2, 2, 1), filled(t, 3, 2, 1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInPlace_ShapeMismatchLeavesReceiver(t *testing.T) {
	ops := map[string]func(m, b *Matrix[float64]) error{
		"MulElemInPlace": (*Matrix[float64]).MulElemInPlace,
		"AddInPlace":     (*Matrix[float64]).AddInPlace,
		"SubInPlace":     (*Matrix[float64]).SubInPlace,
		"CopyFrom":       (*Matrix[float64]).CopyFrom,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			m := sequential(t, 2, 2)
			err := op(m, filled(t, 2, 3, 5))
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []float64{1, 2, 3, 4}, m.Data())
		})
	}
}

func TestInPlace_Arithmetic(t *testing.T) {
	m := sequential(t, 2, 2)
	require.NoError(t, m.MulElemInPlace(sequential(t, 2, 2)))
	assert.Equal(t, []float64{1, 4, 9, 16}, m.Data())

	require.NoError(t, m.AddInPlace(filled(t, 2, 2, 1)))
	assert.Equal(t, []float64{2, 5, 10, 17}, m.Data())

	require.NoError(t, m.SubInPlace(filled(t, 2, 2, 2)))
	assert.Equal(t, []float64{0, 3, 8, 15}, m.Data())

	m.ScaleInPlace(0.5)
	assert.Equal(t, []float64{0, 1.5, 4, 7.5}, m.Data())

	m.AddScalarInPlace(-1)
	assert.Equal(t, []float64{-1, 0.5, 3, 6.5}, m.Data())
}

func TestFromDense(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	m := FromDense[float32](d)
	assert.Equal(t, []float32{1, 2, 3, 4}, m.Data())

	empty, _ := New[float64](0, 2)
	_, err := empty.ToDense()
	assert.ErrorIs(t, err, ErrInvalidDimension)
}
