package dataset

import "errors"

// Common errors.
var (
	ErrTruncatedSample = errors.New("dataset: trailing partial sample")
	ErrInvalidMagic    = errors.New("dataset: invalid IDX magic number")
	ErrLabelRange      = errors.New("dataset: label out of range")
	ErrCountMismatch   = errors.New("dataset: image and label counts differ")
	ErrTooLarge        = errors.New("dataset: item count exceeds limit")
)
