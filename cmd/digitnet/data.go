package main

import (
	"fmt"
	"os"

	"github.com/born-ml/digitnet/internal/dataset"
	"github.com/born-ml/digitnet/internal/matrix"
)

// loadSet loads training or evaluation data.
//
// With labels set, data is an IDX image file and labels its IDX label file.
// Otherwise data is either a directory of raw digit files (data0..data9,
// labelled by file) or a single raw file (unlabelled). samples caps the
// images read per file (0 = all).
func loadSet[T matrix.Float](data, labels string, samples int) (*dataset.Set[T], error) {
	if data == "" {
		return nil, fmt.Errorf("-data is required")
	}
	if labels != "" {
		return dataset.LoadIDX[T](data, labels, samples)
	}

	info, err := os.Stat(data)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return dataset.LoadDigitDir[T](data, samples)
	}

	inputs, err := dataset.LoadRaw[T](data, samples)
	if err != nil {
		return nil, err
	}
	return dataset.NewSet(inputs, nil)
}

// loadInputs loads images for prediction from a raw file or, with idx set,
// an IDX image file.
func loadInputs(path string, idx bool) (*matrix.Matrix[float64], error) {
	if !idx {
		return dataset.LoadRaw[float64](path, 0)
	}

	//nolint:gosec // G304: File path comes from user input
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return dataset.ReadIDXImages[float64](file, 0)
}
