package matrix

// MapInPlace applies f to every element of m.
func (m *Matrix[T]) MapInPlace(f func(T) T) {
	for i, v := range m.data {
		m.data[i] = f(v)
	}
}

// MulElemInPlace multiplies m element-wise by b (Hadamard product).
// Shapes must match; m is untouched on error.
func (m *Matrix[T]) MulElemInPlace(b *Matrix[T]) error {
	if m.rows != b.rows || m.cols != b.cols {
		return shapeErr("MulElemInPlace", m.Shape(), b.Shape())
	}
	for i := range m.data {
		m.data[i] *= b.data[i]
	}
	return nil
}

// AddInPlace adds b to m element-wise.
// Shapes must match; m is untouched on error.
func (m *Matrix[T]) AddInPlace(b *Matrix[T]) error {
	if m.rows != b.rows || m.cols != b.cols {
		return shapeErr("AddInPlace", m.Shape(), b.Shape())
	}
	for i := range m.data {
		m.data[i] += b.data[i]
	}
	return nil
}

// SubInPlace subtracts b from m element-wise.
// Shapes must match; m is untouched on error.
func (m *Matrix[T]) SubInPlace(b *Matrix[T]) error {
	if m.rows != b.rows || m.cols != b.cols {
		return shapeErr("SubInPlace", m.Shape(), b.Shape())
	}
	for i := range m.data {
		m.data[i] -= b.data[i]
	}
	return nil
}

// ScaleInPlace multiplies every element by s.
func (m *Matrix[T]) ScaleInPlace(s T) {
	for i := range m.data {
		m.data[i] *= s
	}
}

// AddScalarInPlace adds s to every element.
func (m *Matrix[T]) AddScalarInPlace(s T) {
	for i := range m.data {
		m.data[i] += s
	}
}

// CopyFrom overwrites m with the contents of b. Shapes must match.
func (m *Matrix[T]) CopyFrom(b *Matrix[T]) error {
	if m.rows != b.rows || m.cols != b.cols {
		return shapeErr("CopyFrom", m.Shape(), b.Shape())
	}
	copy(m.data, b.data)
	return nil
}
