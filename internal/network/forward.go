package network

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// affine computes x·w + b.
func affine[T matrix.Float](x, w, b *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	z, err := matrix.MatMul(x, w)
	if err != nil {
		return nil, err
	}
	if err := z.AddInPlace(b); err != nil {
		return nil, err
	}
	return z, nil
}

// FeedForward runs one sample through the network.
//
// input must be 1×InputNodes. Computes
//
//	H = σ(input·W_ih + b_h)
//	Y = σ(H·W_ho + b_o)
//
// caches H and Y (overwriting the previous pass) and returns a copy of Y.
func (n *Network[T]) FeedForward(input *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	hidden, output, err := n.forward("FeedForward", input)
	if err != nil {
		return nil, err
	}

	n.hidden = hidden
	n.output = output
	n.lastInput = input.Clone()

	return output.Clone(), nil
}

// Infer computes Y for input like FeedForward but leaves the cached
// activations untouched. It only reads the parameters, so concurrent Infer
// calls are safe while nothing mutates the network.
func (n *Network[T]) Infer(input *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	_, output, err := n.forward("Infer", input)
	return output, err
}

func (n *Network[T]) forward(op string, input *matrix.Matrix[T]) (hidden, output *matrix.Matrix[T], err error) {
	if input.Rows() != 1 || input.Cols() != n.inputNodes {
		return nil, nil, fmt.Errorf("%s: expected input 1x%d, got %v: %w",
			op, n.inputNodes, input.Shape(), matrix.ErrInvalidArgument)
	}

	if hidden, err = affine(input, n.weightsIH, n.biasH); err != nil {
		return nil, nil, fmt.Errorf("%s: hidden layer: %w", op, err)
	}
	hidden.MapInPlace(Sigmoid[T])

	if output, err = affine(hidden, n.weightsHO, n.biasO); err != nil {
		return nil, nil, fmt.Errorf("%s: output layer: %w", op, err)
	}
	output.MapInPlace(Sigmoid[T])

	return hidden, output, nil
}

// Predict is FeedForward for callers that do not intend to Learn.
// It overwrites the cached activations like any forward pass.
func (n *Network[T]) Predict(input *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	return n.FeedForward(input)
}
