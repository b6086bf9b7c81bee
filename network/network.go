// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network provides the public API for the one-hidden-layer
// sigmoid network.
//
// Example:
//
//	net, _ := network.New[float64](784, 100, 10)
//	for i := 0; i < inputs.Rows(); i++ {
//	    x, _ := inputs.RowAt(i)
//	    if _, err := net.FeedForward(x); err != nil {
//	        return err
//	    }
//	    if err := net.Learn(x, target); err != nil {
//	        return err
//	    }
//	}
//	err := network.Save(net, "model.dnet", network.SaveOptions{})
package network

import (
	"io"

	"github.com/born-ml/digitnet/internal/network"
	"github.com/born-ml/digitnet/internal/serialization"
	"github.com/born-ml/digitnet/matrix"
)

// Network is a fully connected 1-hidden-layer perceptron.
type Network[T matrix.Float] = network.Network[T]

// Config holds the construction parameters of a Network.
type Config = network.Config

// RatePolicy controls which learning rates SetLearningRate accepts.
type RatePolicy = network.RatePolicy

// Learning rate policies.
const (
	RatePolicyAllow             = network.RatePolicyAllow
	RatePolicyRejectNonPositive = network.RatePolicyRejectNonPositive
)

// DefaultLearningRate is the learning rate of a freshly constructed network.
const DefaultLearningRate = network.DefaultLearningRate

// Parameter names used by StateDict.
const (
	ParamWeightsInputHidden  = network.ParamWeightsInputHidden
	ParamWeightsHiddenOutput = network.ParamWeightsHiddenOutput
	ParamBiasHidden          = network.ParamBiasHidden
	ParamBiasOutput          = network.ParamBiasOutput
)

// SaveOptions carries optional header content for Save and Encode.
type SaveOptions = network.SaveOptions

// Header is the JSON header of a .dnet model file.
type Header = serialization.Header

// TrainingMeta records training progress in a model file.
type TrainingMeta = serialization.TrainingMeta

// Errors.
var (
	ErrNoForwardPass       = network.ErrNoForwardPass
	ErrStaleActivations    = network.ErrStaleActivations
	ErrInvalidLearningRate = network.ErrInvalidLearningRate
	ErrMissingParameter    = network.ErrMissingParameter
	ErrIncompatibleModel   = network.ErrIncompatibleModel
)

// New creates a randomly initialized network with learning rate 0.25.
func New[T matrix.Float](inputNodes, hiddenNodes, outputNodes int) (*Network[T], error) {
	return network.New[T](inputNodes, hiddenNodes, outputNodes)
}

// NewWithConfig creates a network from config.
func NewWithConfig[T matrix.Float](config Config) (*Network[T], error) {
	return network.NewWithConfig[T](config)
}

// DefaultConfig returns a config for the given topology.
func DefaultConfig(inputNodes, hiddenNodes, outputNodes int) Config {
	return network.DefaultConfig(inputNodes, hiddenNodes, outputNodes)
}

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid[T matrix.Float](x T) T {
	return network.Sigmoid(x)
}

// SigmoidPrime is the derivative of Sigmoid.
func SigmoidPrime[T matrix.Float](x T) T {
	return network.SigmoidPrime(x)
}

// Save writes net to a .dnet file.
func Save[T matrix.Float](net *Network[T], path string, opts SaveOptions) error {
	return network.Save(net, path, opts)
}

// Load builds a network from a .dnet file.
func Load[T matrix.Float](path string) (*Network[T], Header, error) {
	return network.Load[T](path)
}

// Encode writes net in .dnet format to w.
func Encode[T matrix.Float](net *Network[T], w io.Writer, opts SaveOptions) error {
	return network.Encode(net, w, opts)
}

// Decode builds a network from a .dnet model of size bytes.
func Decode[T matrix.Float](src io.ReaderAt, size int64) (*Network[T], Header, error) {
	return network.Decode[T](src, size)
}
