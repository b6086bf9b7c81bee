package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Reader reads models in .dnet format.
type Reader struct {
	src        io.ReaderAt
	closer     io.Closer
	header     Header
	flags      uint32
	dataOffset int64 // Offset where matrix data starts
	dataSize   int64 // Size of the data section
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// Open opens a .dnet file with strict validation.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{ValidationLevel: ValidationStrict})
}

// OpenWithOptions opens a .dnet file with custom options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	r, err := NewReader(file, info.Size(), opts)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r.closer = file
	return r, nil
}

// NewReader parses a .dnet model held in src, which is size bytes long.
func NewReader(src io.ReaderAt, size int64, opts ReaderOptions) (*Reader, error) {
	r := &Reader{src: src, opts: opts}
	if err := r.parseHeader(size); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if err := ValidateHeader(&r.header, r.dataSize, opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return r, nil
}

func (r *Reader) parseHeader(size int64) error {
	if size < FixedHeaderSize {
		return ErrTruncated
	}

	buf := make([]byte, FixedHeaderSize)
	if _, err := r.src.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	fixed, err := decodeFixedHeader(buf)
	if err != nil {
		return err
	}
	if fixed.version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, fixed.version, FormatVersion)
	}
	if fixed.headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}
	r.flags = fixed.flags

	headerSize := int64(fixed.headerSize)
	r.dataOffset = dataOffset(headerSize)
	//nolint:gosec // G115: dataSize is compared against the real file size below
	r.dataSize = int64(fixed.dataSize)
	if r.dataSize < 0 || r.dataOffset+r.dataSize > size {
		return ErrTruncated
	}

	headerBytes := make([]byte, headerSize)
	if _, err := r.src.ReadAt(headerBytes, FixedHeaderSize); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	if !r.opts.SkipChecksumValidation {
		computed, err := ComputeChecksumReader(io.NewSectionReader(r.src, r.dataOffset, r.dataSize))
		if err != nil {
			return fmt.Errorf("failed to read matrix data for checksum: %w", err)
		}
		if err := ValidateChecksum(computed, fixed.checksum); err != nil {
			return err
		}
	}

	return nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Flags returns the flags word of the fixed header.
func (r *Reader) Flags() uint32 {
	return r.flags
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// MatrixNames returns the stored matrix names in file order.
func (r *Reader) MatrixNames() []string {
	names := make([]string, len(r.header.Matrices))
	for i, meta := range r.header.Matrices {
		names[i] = meta.Name
	}
	return names
}

// MatrixInfo returns the metadata of the named matrix.
func (r *Reader) MatrixInfo(name string) (*MatrixMeta, error) {
	for _, meta := range r.header.Matrices {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingTensor, name)
}

// ReadMatrixData reads the raw little-endian bytes of the named matrix.
func (r *Reader) ReadMatrixData(name string) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}

	meta, err := r.MatrixInfo(name)
	if err != nil {
		return nil, err
	}
	if meta.Offset < 0 || meta.Size < 0 || meta.Offset+meta.Size > r.dataSize {
		return nil, &ValidationError{Type: "out_of_bounds", Matrix: name, Details: "region outside data section"}
	}

	data := make([]byte, meta.Size)
	if _, err := r.src.ReadAt(data, r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read matrix data: %w", err)
	}
	return data, nil
}

// Close closes the reader and the underlying file, if any.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadMatrix loads one matrix, converting elements to T.
func ReadMatrix[T matrix.Float](r *Reader, name string) (*matrix.Matrix[T], error) {
	meta, err := r.MatrixInfo(name)
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadMatrixData(name)
	if err != nil {
		return nil, err
	}
	return decodeMatrix[T](*meta, raw)
}

// ReadStateDict reads all matrices into a state dictionary.
func ReadStateDict[T matrix.Float](r *Reader) (map[string]*matrix.Matrix[T], error) {
	if r.closed {
		return nil, ErrClosed
	}

	stateDict := make(map[string]*matrix.Matrix[T], len(r.header.Matrices))
	for _, meta := range r.header.Matrices {
		m, err := ReadMatrix[T](r, meta.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load matrix %s: %w", meta.Name, err)
		}
		stateDict[meta.Name] = m
	}
	return stateDict, nil
}
