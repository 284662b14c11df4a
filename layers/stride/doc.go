// Package stride computes the ordered set of filter centroid positions that a
// continuous convolutional filter visits inside a bounded domain.
//
// A [Stride] describes the sweep per axis: the domain extent (minimum is
// always zero), the start centroid, the jump between consecutive centroids
// and the direction of travel (1 increasing, -1 decreasing, 0 fixed).
//
//	s := stride.Stride{
//		Domain:    []float64{1, 1},
//		Start:     []float64{0, 0},
//		Jump:      []float64{0.1, 0.1},
//		Direction: []int{1, 1},
//	}
//	for k, pos := range s.All() {
//		fmt.Println(k, pos)
//	}
//
// Positions are produced in row-major order: the last axis advances first and
// the sweep ends once the first axis leaves the domain. The number of
// positions depends on the descriptor alone, see [Stride.Count].
package stride
