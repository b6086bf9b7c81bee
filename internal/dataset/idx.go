package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/digitnet/internal/matrix"
)

// IDX magic numbers.
const (
	IDXImageMagic = 2051 // 0x00000803
	IDXLabelMagic = 2049 // 0x00000801

	// MaxIDXItems bounds the count field. Buffers grow with the bytes
	// actually read, not with the declared count.
	MaxIDXItems = 1 << 24
)

// ReadIDXImages reads an IDX image stream.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// maxSamples limits how many images are read (0 = read all). Images that
// are not ImageRows×ImageCols are rejected.
func ReadIDXImages[T matrix.Float](r io.Reader, maxSamples int) (*matrix.Matrix[T], error) {
	var header [4]uint32 // magic, count, rows, cols
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read IDX image header: %w", err)
	}
	if header[0] != IDXImageMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], IDXImageMagic)
	}
	if header[2] != ImageRows || header[3] != ImageCols {
		return nil, fmt.Errorf("dataset: images are %dx%d, want %dx%d: %w",
			header[2], header[3], ImageRows, ImageCols, matrix.ErrInvalidDimension)
	}

	n, err := clampCount(header[1], maxSamples)
	if err != nil {
		return nil, err
	}

	pixels, err := readExactly(r, int64(n)*SampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d images: %w", n, err)
	}
	return pixelsToMatrix[T](pixels, n)
}

// ReadIDXLabels reads an IDX label stream.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader, maxSamples int) ([]int, error) {
	var header [2]uint32 // magic, count
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read IDX label header: %w", err)
	}
	if header[0] != IDXLabelMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], IDXLabelMagic)
	}

	n, err := clampCount(header[1], maxSamples)
	if err != nil {
		return nil, err
	}

	raw, err := readExactly(r, int64(n))
	if err != nil {
		return nil, fmt.Errorf("failed to read %d labels: %w", n, err)
	}

	labels := make([]int, n)
	for i, b := range raw {
		if int(b) >= NumClasses {
			return nil, fmt.Errorf("%w: label %d at index %d", ErrLabelRange, b, i)
		}
		labels[i] = int(b)
	}
	return labels, nil
}

// readExactly reads want bytes from r, growing the buffer as data arrives.
// A short stream fails with io.ErrUnexpectedEOF.
func readExactly(r io.Reader, want int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, want))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) < want {
		return nil, fmt.Errorf("got %d of %d bytes: %w", len(data), want, io.ErrUnexpectedEOF)
	}
	return data, nil
}

func clampCount(count uint32, maxSamples int) (int, error) {
	if maxSamples < 0 {
		return 0, fmt.Errorf("dataset: maxSamples %d: %w", maxSamples, matrix.ErrInvalidArgument)
	}
	if count > MaxIDXItems {
		return 0, fmt.Errorf("%w: %d items", ErrTooLarge, count)
	}
	n := int(count)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}
	return n, nil
}

// LoadIDX loads an image file and its label file into a Set.
func LoadIDX[T matrix.Float](imagePath, labelPath string, maxSamples int) (*Set[T], error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for dataset loading
	imageFile, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open images: %w", err)
	}
	defer imageFile.Close()

	images, err := ReadIDXImages[T](imageFile, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	//nolint:gosec // G304: File path comes from user input, which is expected for dataset loading
	labelFile, err := os.Open(labelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open labels: %w", err)
	}
	defer labelFile.Close()

	labels, err := ReadIDXLabels(labelFile, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	return NewSet(images, labels)
}
