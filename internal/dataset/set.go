package dataset

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Set holds N samples, one image per row of Inputs, and optionally one
// label per sample.
type Set[T matrix.Float] struct {
	Inputs *matrix.Matrix[T] // [N, SampleSize]
	Labels []int             // [N] or nil
}

// NewSet pairs inputs with labels. labels may be nil; otherwise it must
// hold one label in [0, NumClasses) per row of inputs.
func NewSet[T matrix.Float](inputs *matrix.Matrix[T], labels []int) (*Set[T], error) {
	if labels != nil && len(labels) != inputs.Rows() {
		return nil, fmt.Errorf("%w: %d images, %d labels", ErrCountMismatch, inputs.Rows(), len(labels))
	}
	for i, label := range labels {
		if label < 0 || label >= NumClasses {
			return nil, fmt.Errorf("%w: label %d at index %d", ErrLabelRange, label, i)
		}
	}
	return &Set[T]{Inputs: inputs, Labels: labels}, nil
}

// Len returns the number of samples.
func (s *Set[T]) Len() int {
	return s.Inputs.Rows()
}

// Labelled reports whether every sample carries a label.
func (s *Set[T]) Labelled() bool {
	return s.Labels != nil
}

// Sample returns row i as a 1×SampleSize matrix.
func (s *Set[T]) Sample(i int) (*matrix.Matrix[T], error) {
	return s.Inputs.RowAt(i)
}

// Target returns the one-hot target of sample i. Unlabelled sets use
// fallback for every sample.
func (s *Set[T]) Target(i, fallback int) (*matrix.Matrix[T], error) {
	if s.Labels == nil {
		return OneHot[T](fallback, NumClasses)
	}
	if i < 0 || i >= len(s.Labels) {
		return nil, fmt.Errorf("dataset: sample %d of %d: %w", i, len(s.Labels), matrix.ErrOutOfRange)
	}
	return OneHot[T](s.Labels[i], NumClasses)
}

// OneHot returns a 1×classes row that is 1 at label and 0 elsewhere.
func OneHot[T matrix.Float](label, classes int) (*matrix.Matrix[T], error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabelRange, label, classes)
	}
	m, err := matrix.New[T](1, classes)
	if err != nil {
		return nil, err
	}
	_ = m.Set(0, label, 1) // in range
	return m, nil
}
