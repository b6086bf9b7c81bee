package network

import "errors"

// Common errors.
var (
	ErrNoForwardPass       = errors.New("network: Learn called without a preceding FeedForward")
	ErrStaleActivations    = errors.New("network: Learn input differs from the last FeedForward input")
	ErrInvalidLearningRate = errors.New("network: learning rate must be positive")
	ErrMissingParameter    = errors.New("network: missing parameter in state dict")
	ErrIncompatibleModel   = errors.New("network: model file does not describe this network")
)
