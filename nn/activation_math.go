//go:build !fastmath

package nn

import "math"

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathTanh computes tanh(x) using standard library math.
func mathTanh(x float64) float64 {
	return math.Tanh(x)
}

// mathLog1p computes log(1+x) using standard library math.
func mathLog1p(x float64) float64 {
	return math.Log1p(x)
}
