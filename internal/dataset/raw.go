package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Image geometry and class count of the digit data.
const (
	ImageRows  = 28
	ImageCols  = 28
	SampleSize = ImageRows * ImageCols // 784 bytes per image
	NumClasses = 10
)

// Normalize maps a pixel byte to [0, 1].
func Normalize[T matrix.Float](pixel byte) T {
	return T(pixel) / 255
}

// pixelsToMatrix converts n back-to-back images into an n×SampleSize matrix.
func pixelsToMatrix[T matrix.Float](pixels []byte, n int) (*matrix.Matrix[T], error) {
	data := make([]T, n*SampleSize)
	for i := range data {
		data[i] = Normalize[T](pixels[i])
	}
	return matrix.FromSlice(n, SampleSize, data)
}

// ReadRaw reads headerless images, SampleSize bytes each, into an
// N×SampleSize matrix with one normalized image per row.
//
// maxSamples limits how many images are read (0 = read all). A stream
// that ends inside an image fails with ErrTruncatedSample.
func ReadRaw[T matrix.Float](r io.Reader, maxSamples int) (*matrix.Matrix[T], error) {
	pixels, err := readPixels(r, maxSamples)
	if err != nil {
		return nil, err
	}
	return pixelsToMatrix[T](pixels, len(pixels)/SampleSize)
}

func readPixels(r io.Reader, maxSamples int) ([]byte, error) {
	if maxSamples < 0 {
		return nil, fmt.Errorf("dataset: maxSamples %d: %w", maxSamples, matrix.ErrInvalidArgument)
	}
	if maxSamples > 0 {
		r = io.LimitReader(r, int64(maxSamples)*SampleSize)
	}

	pixels, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	if rem := len(pixels) % SampleSize; rem != 0 {
		return nil, fmt.Errorf("%w: %d extra bytes after %d samples", ErrTruncatedSample, rem, len(pixels)/SampleSize)
	}
	return pixels, nil
}

func readPixelFile(path string, maxSamples int) ([]byte, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for dataset loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	pixels, err := readPixels(file, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pixels, nil
}

// LoadRaw reads a raw image file. See ReadRaw.
func LoadRaw[T matrix.Float](path string, maxSamples int) (*matrix.Matrix[T], error) {
	pixels, err := readPixelFile(path, maxSamples)
	if err != nil {
		return nil, err
	}
	return pixelsToMatrix[T](pixels, len(pixels)/SampleSize)
}

// DigitFileName returns the name of the raw file holding images of digit.
func DigitFileName(digit int) string {
	return "data" + strconv.Itoa(digit)
}

// LoadDigitDir loads data0 through data9 from dir, taking up to perDigit
// images from each (0 = all). Missing files are skipped; at least one
// must exist.
func LoadDigitDir[T matrix.Float](dir string, perDigit int) (*Set[T], error) {
	var (
		pixels []byte
		labels []int
		found  bool
	)
	for digit := 0; digit < NumClasses; digit++ {
		path := filepath.Join(dir, DigitFileName(digit))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		found = true

		p, err := readPixelFile(path, perDigit)
		if err != nil {
			return nil, err
		}
		pixels = append(pixels, p...)
		for i := 0; i < len(p)/SampleSize; i++ {
			labels = append(labels, digit)
		}
	}

	if !found {
		return nil, fmt.Errorf("no digit files (data0..data9) in %s: %w", dir, os.ErrNotExist)
	}
	inputs, err := pixelsToMatrix[T](pixels, len(labels))
	if err != nil {
		return nil, err
	}
	return NewSet(inputs, labels)
}
