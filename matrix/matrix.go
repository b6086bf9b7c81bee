// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the public API for dense 2-D matrices.
//
// The package defines the core types used by the network:
//   - Matrix[T]: row-major matrix of float32 or float64
//   - Float: element type constraint
//   - Shape, DataType: core type definitions
//
// Every operation that returns a matrix returns a new allocation; in-place
// methods (MapInPlace, AddInPlace, ...) validate shapes before writing.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := matrix.FromRows([][]float64{{5, 6}, {7, 8}})
//	c, err := matrix.MatMul(a, b)  // [[19 22] [43 50]]
package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Type aliases for public API

// Float is the element type constraint: ~float32 | ~float64.
type Float = matrix.Float

// DataType identifies the element type of a matrix.
type DataType = matrix.DataType

// Data type constants.
const (
	Float32 DataType = matrix.Float32
	Float64 DataType = matrix.Float64
)

// Shape is a (rows, cols) pair.
type Shape = matrix.Shape

// ShapeError describes a shape mismatch between two operands.
type ShapeError = matrix.ShapeError

// Source supplies uniform values in [0, 1) for RandomizeWith.
type Source = matrix.Source

// Matrix is a dense row-major matrix.
//
// Example:
//
//	m, _ := matrix.New[float64](2, 3)
//	_ = m.Set(0, 1, 4.5)
//	v, _ := m.At(0, 1)  // 4.5
type Matrix[T Float] = matrix.Matrix[T]

// Errors.
var (
	ErrInvalidDimension = matrix.ErrInvalidDimension
	ErrInvalidArgument  = matrix.ErrInvalidArgument
	ErrOutOfRange       = matrix.ErrOutOfRange
)

// Creation functions

// New creates a zero-filled rows×cols matrix.
func New[T Float](rows, cols int) (*Matrix[T], error) {
	return matrix.New[T](rows, cols)
}

// FromRows creates a matrix from nested rows.
//
// Example:
//
//	m, err := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})  // 2x3
func FromRows[T Float](rows [][]T) (*Matrix[T], error) {
	return matrix.FromRows(rows)
}

// FromSlice creates a rows×cols matrix from row-major data.
func FromSlice[T Float](rows, cols int, data []T) (*Matrix[T], error) {
	return matrix.FromSlice(rows, cols, data)
}

// ColumnVector creates an n×1 matrix from v.
func ColumnVector[T Float](v []T) *Matrix[T] {
	return matrix.ColumnVector(v)
}

// FromDense copies a gonum matrix.
func FromDense[T Float](a mat.Matrix) *Matrix[T] {
	return matrix.FromDense[T](a)
}

// NewSource returns a generator for RandomizeWith. seed < 0 is non-deterministic.
func NewSource(seed int64) Source {
	return matrix.NewSource(seed)
}

// DTypeOf returns the DataType of T.
func DTypeOf[T Float]() DataType {
	return matrix.DTypeOf[T]()
}

// Operations

// MatMul returns the matrix product a·b.
func MatMul[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	return matrix.MatMul(a, b)
}

// Sub returns a - b.
func Sub[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	return matrix.Sub(a, b)
}

// Transpose returns aᵗ.
func Transpose[T Float](a *Matrix[T]) *Matrix[T] {
	return matrix.Transpose(a)
}

// Map returns f applied to every element of a.
func Map[T Float](a *Matrix[T], f func(T) T) *Matrix[T] {
	return matrix.Map(a, f)
}

// HConcat places b to the right of a.
func HConcat[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	return matrix.HConcat(a, b)
}
