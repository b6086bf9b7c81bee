package network

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Parameter names used by StateDict, in serialization order.
const (
	ParamWeightsInputHidden  = "weights_input_hidden"
	ParamWeightsHiddenOutput = "weights_hidden_output"
	ParamBiasHidden          = "bias_hidden"
	ParamBiasOutput          = "bias_output"
)

// ParamNames lists the parameter names in a stable order.
var ParamNames = []string{
	ParamWeightsInputHidden,
	ParamWeightsHiddenOutput,
	ParamBiasHidden,
	ParamBiasOutput,
}

// StateDict returns copies of the four parameters keyed by name.
func (n *Network[T]) StateDict() map[string]*matrix.Matrix[T] {
	return map[string]*matrix.Matrix[T]{
		ParamWeightsInputHidden:  n.weightsIH.Clone(),
		ParamWeightsHiddenOutput: n.weightsHO.Clone(),
		ParamBiasHidden:          n.biasH.Clone(),
		ParamBiasOutput:          n.biasO.Clone(),
	}
}

// LoadStateDict copies parameters from a state dictionary.
//
// All four parameters must be present with matching shapes; the network is
// left unchanged if any is missing or mismatched. Cached activations are
// discarded.
func (n *Network[T]) LoadStateDict(stateDict map[string]*matrix.Matrix[T]) error {
	targets := map[string]*matrix.Matrix[T]{
		ParamWeightsInputHidden:  n.weightsIH,
		ParamWeightsHiddenOutput: n.weightsHO,
		ParamBiasHidden:          n.biasH,
		ParamBiasOutput:          n.biasO,
	}

	for _, name := range ParamNames {
		src, ok := stateDict[name]
		if !ok || src == nil {
			return fmt.Errorf("%w: %s", ErrMissingParameter, name)
		}
		if src.Shape() != targets[name].Shape() {
			return fmt.Errorf("%s shape mismatch: expected %v, got %v: %w",
				name, targets[name].Shape(), src.Shape(), matrix.ErrInvalidArgument)
		}
	}

	for _, name := range ParamNames {
		_ = targets[name].CopyFrom(stateDict[name]) // shapes checked above
	}

	n.hidden, n.output, n.lastInput = nil, nil, nil
	return nil
}
