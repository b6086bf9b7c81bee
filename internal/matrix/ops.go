package matrix

// MatMul returns the matrix product a·b.
//
// Requires a.Cols() == b.Rows(); otherwise returns ErrInvalidArgument and
// no matrix. The product is a direct O(rows·cols·inner) triple loop with
// accumulation in T.
func MatMul[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.cols != b.rows {
		return nil, shapeErr("MatMul", a.Shape(), b.Shape())
	}

	m, k, n := a.rows, a.cols, b.cols
	c := newUnchecked[T](m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a.data[i*k+kIdx] * b.data[kIdx*n+j]
			}
			c.data[i*n+j] = sum
		}
	}
	return c, nil
}

// Sub returns the element-wise difference a - b.
func Sub[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, shapeErr("Sub", a.Shape(), b.Shape())
	}
	c := newUnchecked[T](a.rows, a.cols)
	for i := range c.data {
		c.data[i] = a.data[i] - b.data[i]
	}
	return c, nil
}

// Transpose returns a new cols×rows matrix with result[j][i] = a[i][j].
func Transpose[T Float](a *Matrix[T]) *Matrix[T] {
	t := newUnchecked[T](a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			t.data[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}
	return t
}

// Map returns a new matrix with f applied to every element of a.
func Map[T Float](a *Matrix[T], f func(T) T) *Matrix[T] {
	c := newUnchecked[T](a.rows, a.cols)
	for i, v := range a.data {
		c.data[i] = f(v)
	}
	return c
}

// HConcat joins a and b side by side: the left block is a, the right is b.
// Requires a.Rows() == b.Rows().
func HConcat[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.rows != b.rows {
		return nil, shapeErr("HConcat", a.Shape(), b.Shape())
	}
	cols := a.cols + b.cols
	c := newUnchecked[T](a.rows, cols)
	for i := 0; i < a.rows; i++ {
		copy(c.data[i*cols:i*cols+a.cols], a.data[i*a.cols:(i+1)*a.cols])
		copy(c.data[i*cols+a.cols:(i+1)*cols], b.data[i*b.cols:(i+1)*b.cols])
	}
	return c, nil
}
