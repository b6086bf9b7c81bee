package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure returned by this package wraps one of
// these, so callers match with errors.Is.
var (
	// ErrInvalidDimension is returned when a row or column count is negative.
	ErrInvalidDimension = errors.New("matrix: invalid dimension")

	// ErrInvalidArgument is returned when operand shapes are incompatible
	// or nested input is ragged.
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrOutOfRange is returned when a row or column index is outside bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// Shape is a (rows, cols) pair.
type Shape [2]int

// String formats the shape as RxC.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s[0], s[1])
}

// ShapeError describes a shape mismatch between two operands.
type ShapeError struct {
	Op    string // Operation name (e.g., "MatMul")
	Left  Shape  // Shape of the receiver or first operand
	Right Shape  // Shape of the second operand
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: shapes %v and %v", e.Op, ErrInvalidArgument, e.Left, e.Right)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ShapeError) Unwrap() error {
	return ErrInvalidArgument
}

func shapeErr(op string, left, right Shape) error {
	return &ShapeError{Op: op, Left: left, Right: right}
}

// indexErrorf wraps ErrOutOfRange with method context.
func indexErrorf(method string, row, col int, s Shape) error {
	return fmt.Errorf("Matrix.%s(%d,%d) on %v: %w", method, row, col, s, ErrOutOfRange)
}
