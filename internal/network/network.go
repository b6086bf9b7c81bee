// Package network implements a fully connected feed-forward network with
// one hidden layer, the logistic activation, squared-error loss, and
// single-sample stochastic gradient descent.
//
// Training is a sequence of FeedForward/Learn pairs, one per sample:
//
//	net, _ := network.New[float64](2, 4, 1)
//	for epoch := 0; epoch < epochs; epoch++ {
//	    for i := range samples {
//	        if _, err := net.FeedForward(inputs[i]); err != nil {
//	            return err
//	        }
//	        if err := net.Learn(inputs[i], targets[i]); err != nil {
//	            return err
//	        }
//	    }
//	}
//
// A Network is not safe for concurrent use.
package network

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Network is a 1-hidden-layer perceptron.
//
// It owns four parameters (input→hidden weights, hidden→output weights,
// hidden bias, output bias) and caches the hidden (H) and output (Y)
// activations of the most recent FeedForward for use by Learn.
type Network[T matrix.Float] struct {
	inputNodes  int
	hiddenNodes int
	outputNodes int

	learningRate T
	ratePolicy   RatePolicy

	weightsIH *matrix.Matrix[T] // [inputNodes, hiddenNodes]
	weightsHO *matrix.Matrix[T] // [hiddenNodes, outputNodes]
	biasH     *matrix.Matrix[T] // [1, hiddenNodes]
	biasO     *matrix.Matrix[T] // [1, outputNodes]

	hidden    *matrix.Matrix[T] // H, [1, hiddenNodes]
	output    *matrix.Matrix[T] // Y, [1, outputNodes]
	lastInput *matrix.Matrix[T] // input of the FeedForward that produced H and Y
}

// New creates a network with the given topology, every weight and bias
// drawn uniformly from [0, 1) with a non-deterministic seed, and a
// learning rate of 0.25.
//
// Returns matrix.ErrInvalidDimension if any node count is negative.
func New[T matrix.Float](inputNodes, hiddenNodes, outputNodes int) (*Network[T], error) {
	return NewWithConfig[T](DefaultConfig(inputNodes, hiddenNodes, outputNodes))
}

// NewWithConfig creates a network from config.
//
// A zero LearningRate is replaced by DefaultLearningRate; use
// SetLearningRate to train with a zero rate.
func NewWithConfig[T matrix.Float](config Config) (*Network[T], error) {
	if config.LearningRate == 0 {
		config.LearningRate = DefaultLearningRate
	}
	if err := config.checkRate(config.LearningRate); err != nil {
		return nil, err
	}

	src := config.Source
	if src == nil {
		src = matrix.NewSource(config.Seed)
	}

	n := &Network[T]{
		inputNodes:   config.InputNodes,
		hiddenNodes:  config.HiddenNodes,
		outputNodes:  config.OutputNodes,
		learningRate: T(config.LearningRate),
		ratePolicy:   config.RatePolicy,
	}

	var err error
	if n.weightsIH, err = matrix.New[T](config.InputNodes, config.HiddenNodes); err != nil {
		return nil, fmt.Errorf("input-hidden weights: %w", err)
	}
	if n.weightsHO, err = matrix.New[T](config.HiddenNodes, config.OutputNodes); err != nil {
		return nil, fmt.Errorf("hidden-output weights: %w", err)
	}
	if n.biasH, err = matrix.New[T](1, config.HiddenNodes); err != nil {
		return nil, fmt.Errorf("hidden bias: %w", err)
	}
	if n.biasO, err = matrix.New[T](1, config.OutputNodes); err != nil {
		return nil, fmt.Errorf("output bias: %w", err)
	}

	n.biasH.RandomizeWith(src)
	n.biasO.RandomizeWith(src)
	n.weightsIH.RandomizeWith(src)
	n.weightsHO.RandomizeWith(src)

	return n, nil
}

// InputNodes returns the number of input nodes.
func (n *Network[T]) InputNodes() int {
	return n.inputNodes
}

// HiddenNodes returns the number of hidden nodes.
func (n *Network[T]) HiddenNodes() int {
	return n.hiddenNodes
}

// OutputNodes returns the number of output nodes.
func (n *Network[T]) OutputNodes() int {
	return n.outputNodes
}

// LearningRate returns the current learning rate.
func (n *Network[T]) LearningRate() T {
	return n.learningRate
}

// SetLearningRate updates the learning rate.
//
// Under RatePolicyAllow (the default) any value is accepted. Under
// RatePolicyRejectNonPositive, rate <= 0 returns ErrInvalidLearningRate
// and leaves the rate unchanged.
func (n *Network[T]) SetLearningRate(rate T) error {
	if n.ratePolicy == RatePolicyRejectNonPositive && rate <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidLearningRate, rate)
	}
	n.learningRate = rate
	return nil
}

// RatePolicy returns the learning rate validation policy.
func (n *Network[T]) RatePolicy() RatePolicy {
	return n.ratePolicy
}

// WeightsInputHidden returns a copy of the input→hidden weights.
func (n *Network[T]) WeightsInputHidden() *matrix.Matrix[T] {
	return n.weightsIH.Clone()
}

// WeightsHiddenOutput returns a copy of the hidden→output weights.
func (n *Network[T]) WeightsHiddenOutput() *matrix.Matrix[T] {
	return n.weightsHO.Clone()
}

// BiasHidden returns a copy of the hidden bias row vector.
func (n *Network[T]) BiasHidden() *matrix.Matrix[T] {
	return n.biasH.Clone()
}

// BiasOutput returns a copy of the output bias row vector.
func (n *Network[T]) BiasOutput() *matrix.Matrix[T] {
	return n.biasO.Clone()
}

// SetWeightsInputHidden replaces the input→hidden weights with a copy of w.
func (n *Network[T]) SetWeightsInputHidden(w *matrix.Matrix[T]) error {
	return n.weightsIH.CopyFrom(w)
}

// SetWeightsHiddenOutput replaces the hidden→output weights with a copy of w.
func (n *Network[T]) SetWeightsHiddenOutput(w *matrix.Matrix[T]) error {
	return n.weightsHO.CopyFrom(w)
}

// SetBiasHidden replaces the hidden bias with a copy of b.
func (n *Network[T]) SetBiasHidden(b *matrix.Matrix[T]) error {
	return n.biasH.CopyFrom(b)
}

// SetBiasOutput replaces the output bias with a copy of b.
func (n *Network[T]) SetBiasOutput(b *matrix.Matrix[T]) error {
	return n.biasO.CopyFrom(b)
}

// Hidden returns a copy of the cached hidden activations, or nil before
// the first FeedForward.
func (n *Network[T]) Hidden() *matrix.Matrix[T] {
	if n.hidden == nil {
		return nil
	}
	return n.hidden.Clone()
}

// Output returns a copy of the cached output activations, or nil before
// the first FeedForward.
func (n *Network[T]) Output() *matrix.Matrix[T] {
	if n.output == nil {
		return nil
	}
	return n.output.Clone()
}
