package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrTruncated          = errors.New("file is truncated")
	ErrMissingTensor      = errors.New("matrix not found")
	ErrUnsupportedDType   = errors.New("unsupported dtype")
	ErrClosed             = errors.New("reader is closed")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Matrix  string // Primary matrix name involved
	Matrix2 string // Secondary matrix name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Matrix2 != "" {
		return fmt.Sprintf("%s: matrices %q and %q: %s", e.Type, e.Matrix, e.Matrix2, e.Details)
	}
	if e.Matrix != "" {
		return fmt.Sprintf("%s: matrix %q: %s", e.Type, e.Matrix, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
