package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Write encodes stateDict as a .dnet file to w.
//
// Matrices are written in the order given by names; a nil names writes
// every entry in sorted name order. Header fields FormatVersion, Matrices
// and Flags are filled in by Write. ModelID and CreatedAt are assigned
// when left empty.
func Write[T matrix.Float](w io.Writer, stateDict map[string]*matrix.Matrix[T], names []string, header Header) error {
	if names == nil {
		names = make([]string, 0, len(stateDict))
		for name := range stateDict {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	header.FormatVersion = FormatVersion
	if header.ModelID == "" {
		header.ModelID = uuid.NewString()
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}

	dtype := matrix.DTypeOf[T]()
	header.Matrices = make([]MatrixMeta, 0, len(names))
	var data []byte
	for _, name := range names {
		if err := ValidateMatrixName(name); err != nil {
			return err
		}
		m, ok := stateDict[name]
		if !ok || m == nil {
			return fmt.Errorf("%w: %s", ErrMissingTensor, name)
		}

		offset := int64(len(data))
		data = encodeMatrix(data, m)
		header.Matrices = append(header.Matrices, MatrixMeta{
			Name:   name,
			DType:  dtype.String(),
			Rows:   m.Rows(),
			Cols:   m.Cols(),
			Offset: offset,
			Size:   int64(len(data)) - offset,
		})
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	fixed := fixedHeader{
		version:    FormatVersion,
		headerSize: uint64(len(headerJSON)),
		dataSize:   uint64(len(data)),
		checksum:   ComputeChecksum(data),
	}
	if len(header.Metadata) > 0 {
		fixed.flags |= FlagHasMetadata
	}
	if header.Training != nil {
		fixed.flags |= FlagHasTraining
	}

	var buf bytes.Buffer
	buf.Grow(int(dataOffset(int64(len(headerJSON)))) + len(data))
	buf.Write(fixed.encode())
	buf.Write(headerJSON)
	padding := dataOffset(int64(len(headerJSON))) - int64(FixedHeaderSize+len(headerJSON))
	buf.Write(make([]byte, padding))
	buf.Write(data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// WriteFile writes stateDict to a .dnet file at path, replacing any existing file.
func WriteFile[T matrix.Float](path string, stateDict map[string]*matrix.Matrix[T], names []string, header Header) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, stateDict, names, header); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
