// Package dataset loads handwritten digit images as normalized matrices.
//
// Two on-disk layouts are supported:
//
//   - Raw: 28x28 unsigned bytes per image, images back to back with no
//     header. A directory of raw files named data0 through data9 holds one
//     file per digit, and the file's digit is the label of every image in it.
//   - IDX: the MNIST distribution format (train-images-idx3-ubyte and
//     train-labels-idx1-ubyte).
//
// Pixels are divided by 255 so every input lies in [0, 1].
package dataset
