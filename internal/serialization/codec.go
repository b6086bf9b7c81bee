package serialization

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
)

// encodeMatrix appends the row-major little-endian bytes of m to dst.
func encodeMatrix[T matrix.Float](dst []byte, m *matrix.Matrix[T]) []byte {
	data := m.Data()
	switch matrix.DTypeOf[T]() {
	case matrix.Float32:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
		}
	default:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(float64(v)))
		}
	}
	return dst
}

// decodeMatrix builds a Matrix[T] from the stored bytes, converting the
// element type when the file dtype differs from T.
func decodeMatrix[T matrix.Float](meta MatrixMeta, raw []byte) (*matrix.Matrix[T], error) {
	dtype, ok := matrix.ParseDataType(meta.DType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, meta.DType)
	}
	n := meta.Rows * meta.Cols
	if int64(n*dtype.Size()) != int64(len(raw)) {
		return nil, &ValidationError{
			Type:    "size_mismatch",
			Matrix:  meta.Name,
			Details: fmt.Sprintf("%dx%d %s needs %d bytes, got %d", meta.Rows, meta.Cols, meta.DType, n*dtype.Size(), len(raw)),
		}
	}

	data := make([]T, n)
	switch dtype {
	case matrix.Float32:
		for i := range data {
			data[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	default:
		for i := range data {
			data[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:])))
		}
	}
	return matrix.FromSlice(meta.Rows, meta.Cols, data)
}
