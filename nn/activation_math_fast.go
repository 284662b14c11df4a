//go:build fastmath

package nn

import (
	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathTanh computes tanh(x) using fast approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func mathTanh(x float64) float64 {
	// e^(2x) saturates long before |x| reaches 20.
	if x > 20 {
		return 1
	}
	if x < -20 {
		return -1
	}
	return 1 - 2/(approx.FastExp(2*x)+1)
}

// mathLog1p computes log(1+x) using fast approximation.
func mathLog1p(x float64) float64 {
	return approx.FastLog(1 + x)
}
