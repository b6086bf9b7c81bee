package serialization

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digitnet/internal/matrix"
)

func testStateDict(t *testing.T) map[string]*matrix.Matrix[float64] {
	t.Helper()
	w, err := matrix.FromRows([][]float64{{0.1, -0.2, 0.3}, {1e-9, 42, -7.5}})
	require.NoError(t, err)
	b, err := matrix.FromRows([][]float64{{0.5, 0.25, 0.125}})
	require.NoError(t, err)
	return map[string]*matrix.Matrix[float64]{"weights": w, "bias": b}
}

func writeToBuffer(t *testing.T, header Header) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testStateDict(t), []string{"weights", "bias"}, header))
	return buf.Bytes()
}

func TestWrite_Layout(t *testing.T) {
	data := writeToBuffer(t, Header{ModelType: "mlp-sigmoid", Metadata: map[string]string{"k": "v"}})

	require.GreaterOrEqual(t, len(data), FixedHeaderSize)
	assert.Equal(t, MagicBytes, string(data[0:4]))
	assert.Equal(t, uint32(FormatVersion), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, FlagHasMetadata, binary.LittleEndian.Uint32(data[8:12]))

	headerSize := int64(binary.LittleEndian.Uint64(data[16:24]))
	dataSize := int64(binary.LittleEndian.Uint64(data[24:32]))
	start := dataOffset(headerSize)
	assert.Zero(t, start%HeaderAlignment)
	assert.Equal(t, int64(9*8), dataSize)
	assert.Equal(t, int64(len(data)), start+dataSize)

	// First element of "weights" is 0.1 in little-endian float64.
	var want [8]byte
	binary.LittleEndian.PutUint64(want[:], 0x3FB999999999999A)
	assert.Equal(t, want[:], data[start:start+8])
}

func TestRoundTrip_Buffer(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	data := writeToBuffer(t, Header{
		ModelType:    "mlp-sigmoid",
		CreatedAt:    created,
		Topology:     []int{3, 1, 3},
		LearningRate: 0.25,
		Training:     &TrainingMeta{Epoch: 3, Loss: 0.01},
	})

	r, err := NewReader(bytes.NewReader(data), int64(len(data)), ReaderOptions{})
	require.NoError(t, err)
	defer r.Close()

	h := r.Header()
	assert.Equal(t, FormatVersion, h.FormatVersion)
	assert.Equal(t, "mlp-sigmoid", h.ModelType)
	assert.Equal(t, []int{3, 1, 3}, h.Topology)
	assert.InDelta(t, 0.25, h.LearningRate, 0)
	assert.True(t, created.Equal(h.CreatedAt))
	require.NotNil(t, h.Training)
	assert.Equal(t, 3, h.Training.Epoch)
	assert.Equal(t, FlagHasTraining, r.Flags())
	_, err = uuid.Parse(h.ModelID)
	assert.NoError(t, err, "model id should be a UUID")
	assert.Equal(t, []string{"weights", "bias"}, r.MatrixNames())

	got, err := ReadStateDict[float64](r)
	require.NoError(t, err)
	for name, want := range testStateDict(t) {
		require.Contains(t, got, name)
		assert.True(t, want.Equal(got[name]), "matrix %s differs", name)
	}
}

func TestRoundTrip_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.dnet")
	state := testStateDict(t)
	require.NoError(t, WriteFile(path, state, nil, Header{ModelType: "mlp-sigmoid"}))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	// nil names writes sorted order.
	assert.Equal(t, []string{"bias", "weights"}, r.MatrixNames())

	w, err := ReadMatrix[float64](r, "weights")
	require.NoError(t, err)
	assert.True(t, state["weights"].Equal(w))

	_, err = ReadMatrix[float64](r, "missing")
	assert.ErrorIs(t, err, ErrMissingTensor)

	require.NoError(t, r.Close())
	_, err = ReadStateDict[float64](r)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRoundTrip_Float32(t *testing.T) {
	m, err := matrix.FromRows([][]float32{{1.5, -2.25}, {3, 0}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]*matrix.Matrix[float32]{"m": m}, nil, Header{}))

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), ReaderOptions{})
	require.NoError(t, err)

	info, err := r.MatrixInfo("m")
	require.NoError(t, err)
	assert.Equal(t, "float32", info.DType)
	assert.Equal(t, int64(16), info.Size)

	// Elements widen to float64 on read.
	wide, err := ReadMatrix[float64](r, "m")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25, 3, 0}, wide.Flatten())
}

func TestWrite_MissingMatrix(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, testStateDict(t), []string{"weights", "nope"}, Header{})
	assert.ErrorIs(t, err, ErrMissingTensor)
	assert.Zero(t, buf.Len(), "nothing should be written on error")
}

func TestReader_CorruptedData(t *testing.T) {
	data := writeToBuffer(t, Header{})
	data[len(data)-1] ^= 0xFF

	_, err := NewReader(bytes.NewReader(data), int64(len(data)), ReaderOptions{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	r, err := NewReader(bytes.NewReader(data), int64(len(data)), ReaderOptions{SkipChecksumValidation: true})
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestReader_RejectsMalformed(t *testing.T) {
	good := writeToBuffer(t, Header{})

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"bad magic", func(b []byte) []byte { copy(b, "BORN"); return b }, ErrInvalidMagic},
		{"future version", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[4:8], 99); return b }, ErrUnsupportedVersion},
		{"huge header", func(b []byte) []byte { binary.LittleEndian.PutUint64(b[16:24], MaxHeaderSize+1); return b }, ErrHeaderTooLarge},
		{"short file", func(b []byte) []byte { return b[:FixedHeaderSize-1] }, ErrTruncated},
		{"truncated data", func(b []byte) []byte { return b[:len(b)-8] }, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), good...))
			_, err := NewReader(bytes.NewReader(data), int64(len(data)), ReaderOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.dnet"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
