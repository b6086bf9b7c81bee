package serialization

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Validation limits.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB
	MaxMatrixCount   = 1024
	MaxMatrixNameLen = 256
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all checks, including offset overlap (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names and shapes only.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateMatrixOffsets checks for overlapping regions and out-of-bounds access.
func ValidateMatrixOffsets(matrices []MatrixMeta, dataSize int64) error {
	if len(matrices) > MaxMatrixCount {
		return &ValidationError{
			Type:    "too_many_matrices",
			Details: fmt.Sprintf("got %d, max %d", len(matrices), MaxMatrixCount),
		}
	}

	sorted := make([]MatrixMeta, len(matrices))
	copy(sorted, matrices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, m := range sorted {
		if m.Offset < 0 || m.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", m.Offset, m.Size),
			}
		}

		if m.Offset+m.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", m.Offset, m.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if m.Offset+m.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Matrix:  m.Name,
					Matrix2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						m.Offset, m.Offset+m.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateMatrixName rejects empty, oversized and path-like names.
func ValidateMatrixName(name string) error {
	if name == "" {
		return &ValidationError{Type: "invalid_name", Details: "empty name"}
	}
	if len(name) > MaxMatrixNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Matrix:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxMatrixNameLen),
		}
	}
	if strings.Contains(name, "..") {
		return &ValidationError{Type: "invalid_name", Matrix: name, Details: "contains '..'"}
	}
	if strings.ContainsAny(name, "/\\") {
		return &ValidationError{Type: "invalid_name", Matrix: name, Details: "contains path separator (/ or \\)"}
	}
	if strings.Contains(name, "\x00") {
		return &ValidationError{Type: "invalid_name", Matrix: name, Details: "contains null byte"}
	}
	return nil
}

// ValidateMatrixShape checks that the declared shape and dtype account for
// exactly Size bytes.
func ValidateMatrixShape(m MatrixMeta) error {
	dtype, ok := matrix.ParseDataType(m.DType)
	if !ok {
		return &ValidationError{Type: "invalid_dtype", Matrix: m.Name, Details: fmt.Sprintf("dtype %q", m.DType)}
	}
	if m.Rows < 0 || m.Cols < 0 {
		return &ValidationError{
			Type:    "invalid_shape",
			Matrix:  m.Name,
			Details: fmt.Sprintf("%dx%d", m.Rows, m.Cols),
		}
	}
	if m.Rows > 0 && int64(m.Cols) > math.MaxInt64/int64(dtype.Size())/int64(m.Rows) {
		return &ValidationError{Type: "invalid_shape", Matrix: m.Name, Details: fmt.Sprintf("%dx%d overflows", m.Rows, m.Cols)}
	}
	want := int64(m.Rows) * int64(m.Cols) * int64(dtype.Size())
	if want != m.Size {
		return &ValidationError{
			Type:    "size_mismatch",
			Matrix:  m.Name,
			Details: fmt.Sprintf("%dx%d %s needs %d bytes, header says %d", m.Rows, m.Cols, m.DType, want, m.Size),
		}
	}
	return nil
}

// ValidateHeader performs header validation at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Matrices) > MaxMatrixCount {
		return &ValidationError{
			Type:    "too_many_matrices",
			Details: fmt.Sprintf("got %d, max %d", len(h.Matrices), MaxMatrixCount),
		}
	}

	seen := make(map[string]struct{}, len(h.Matrices))
	for _, m := range h.Matrices {
		if err := ValidateMatrixName(m.Name); err != nil {
			return err
		}
		if _, dup := seen[m.Name]; dup {
			return &ValidationError{Type: "duplicate_name", Matrix: m.Name, Details: "name appears twice"}
		}
		seen[m.Name] = struct{}{}
		if err := ValidateMatrixShape(m); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		if err := ValidateMatrixOffsets(h.Matrices, dataSize); err != nil {
			return err
		}
	}

	return nil
}
