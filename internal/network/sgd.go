package network

import "github.com/born-ml/digitnet/internal/matrix"

// sgdStep applies plain gradient descent to one parameter:
//
//	param = param - lr * grad
//
// grad is scaled in place. Shapes are guaranteed by the caller.
func sgdStep[T matrix.Float](param, grad *matrix.Matrix[T], lr T) {
	grad.ScaleInPlace(lr)
	if err := param.SubInPlace(grad); err != nil {
		panic("network: sgd step on mismatched shapes: " + err.Error())
	}
}
