package network

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// DefaultLearningRate is the learning rate of a freshly constructed network.
const DefaultLearningRate = 0.25

// RatePolicy controls which learning rates SetLearningRate accepts.
type RatePolicy int

const (
	// RatePolicyAllow accepts any rate. Zero makes Learn a no-op and a
	// negative rate ascends the loss.
	RatePolicyAllow RatePolicy = iota
	// RatePolicyRejectNonPositive rejects rates <= 0 with ErrInvalidLearningRate.
	RatePolicyRejectNonPositive
)

// String returns the policy name.
func (p RatePolicy) String() string {
	switch p {
	case RatePolicyAllow:
		return "allow"
	case RatePolicyRejectNonPositive:
		return "reject-non-positive"
	default:
		return "unknown"
	}
}

// Config holds the construction parameters of a Network.
type Config struct {
	InputNodes  int
	HiddenNodes int
	OutputNodes int

	LearningRate float64    // Initial learning rate (default: 0.25)
	RatePolicy   RatePolicy // Learning rate validation (default: allow)

	// Seed for weight initialization. -1 = non-deterministic.
	Seed int64

	// Source overrides Seed when set.
	Source matrix.Source
}

// DefaultConfig returns a config for the given topology with the default
// learning rate and a non-deterministic seed.
func DefaultConfig(inputNodes, hiddenNodes, outputNodes int) Config {
	return Config{
		InputNodes:   inputNodes,
		HiddenNodes:  hiddenNodes,
		OutputNodes:  outputNodes,
		LearningRate: DefaultLearningRate,
		RatePolicy:   RatePolicyAllow,
		Seed:         -1,
	}
}

func (c Config) checkRate(rate float64) error {
	if c.RatePolicy == RatePolicyRejectNonPositive && rate <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidLearningRate, rate)
	}
	return nil
}
