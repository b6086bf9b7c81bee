package network

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// gradients holds the per-sample gradients of the squared-error loss.
type gradients[T matrix.Float] struct {
	weightsIH *matrix.Matrix[T] // inputᵗ·δ1
	weightsHO *matrix.Matrix[T] // Hᵗ·δ2
	biasH     *matrix.Matrix[T] // δ1
	biasO     *matrix.Matrix[T] // δ2
}

// Learn performs one backpropagation and SGD step for a single sample.
//
// It must follow FeedForward(input) for the same input: the cached H and
// Y of that pass are consumed. Learn returns ErrNoForwardPass if there is
// no pending forward pass and ErrStaleActivations if input differs from
// the one that produced the cache (NaN elements match NaN). A forward pass is consumed by Learn,
// so each Learn needs its own FeedForward.
//
// With z_h = input·W_ih + b_h and z_o = H·W_ho + b_o:
//
//	δ2     = (Y - target) ⊙ σ'(z_o)
//	δ1     = (δ2·W_hoᵗ) ⊙ σ'(z_h)
//	∇W_ho  = Hᵗ·δ2
//	∇W_ih  = inputᵗ·δ1
//
// then every gradient is scaled by the learning rate and subtracted from
// its parameter. σ' is recomputed from the pre-activations rather than
// derived from the cached activations.
//
// No parameter is modified unless every shape check passes.
func (n *Network[T]) Learn(input, target *matrix.Matrix[T]) error {
	if n.lastInput == nil {
		return ErrNoForwardPass
	}
	if !input.Identical(n.lastInput) {
		return ErrStaleActivations
	}
	if target.Rows() != 1 || target.Cols() != n.outputNodes {
		return fmt.Errorf("Learn: expected target 1x%d, got %v: %w",
			n.outputNodes, target.Shape(), matrix.ErrInvalidArgument)
	}

	grads, err := n.backward(input, target)
	if err != nil {
		return fmt.Errorf("Learn: %w", err)
	}

	sgdStep(n.weightsIH, grads.weightsIH, n.learningRate)
	sgdStep(n.weightsHO, grads.weightsHO, n.learningRate)
	sgdStep(n.biasH, grads.biasH, n.learningRate)
	sgdStep(n.biasO, grads.biasO, n.learningRate)

	n.lastInput = nil
	return nil
}

// backward computes the loss gradients from the cached activations
// without touching any parameter.
func (n *Network[T]) backward(input, target *matrix.Matrix[T]) (*gradients[T], error) {
	// Output error signal.
	delta2, err := matrix.Sub(n.output, target)
	if err != nil {
		return nil, err
	}
	zOut, err := affine(n.hidden, n.weightsHO, n.biasO)
	if err != nil {
		return nil, err
	}
	zOut.MapInPlace(SigmoidPrime[T])
	if err := delta2.MulElemInPlace(zOut); err != nil {
		return nil, err
	}

	// Hidden error signal.
	delta1, err := matrix.MatMul(delta2, matrix.Transpose(n.weightsHO))
	if err != nil {
		return nil, err
	}
	zHidden, err := affine(input, n.weightsIH, n.biasH)
	if err != nil {
		return nil, err
	}
	zHidden.MapInPlace(SigmoidPrime[T])
	if err := delta1.MulElemInPlace(zHidden); err != nil {
		return nil, err
	}

	gradHO, err := matrix.MatMul(matrix.Transpose(n.hidden), delta2)
	if err != nil {
		return nil, err
	}
	gradIH, err := matrix.MatMul(matrix.Transpose(input), delta1)
	if err != nil {
		return nil, err
	}

	return &gradients[T]{
		weightsIH: gradIH,
		weightsHO: gradHO,
		biasH:     delta1,
		biasO:     delta2,
	}, nil
}
