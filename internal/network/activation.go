package network

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/born-ml/digitnet/internal/matrix"
)

// exp computes e^x in the precision of T.
func exp[T matrix.Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Exp(v))
	}
	return T(math.Exp(float64(x)))
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid[T matrix.Float](x T) T {
	return 1 / (1 + exp(-x))
}

// SigmoidPrime is the derivative of Sigmoid evaluated at the pre-activation x:
//
//	e^-x / (1 + e^-x)^2
//
// The function is even, so it is evaluated at |x| to keep e^-x finite.
func SigmoidPrime[T matrix.Float](x T) T {
	if x < 0 {
		x = -x
	}
	e := exp(-x)
	return e / ((1 + e) * (1 + e))
}
