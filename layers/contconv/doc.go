// Package contconv implements a continuous convolutional filter for
// unstructured point clouds.
//
// The filter generalizes discrete convolution to irregular meshes. A stride
// schedule places an axis-aligned window of extent FilterDim at a sequence of
// centroids. For every centroid the points falling inside the window are
// mapped to their offset from the centroid, passed through a trainable kernel
// and summed against their field values:
//
//	out[b][o][s] = Σ_i Σ_{p ∈ window(s)} v_p · K_{o,i}(x_p − c_s)
//
// The result is a compressed representation with one value per (batch,
// output field, centroid), stored as a [mesh.Cloud] whose coordinates are the
// centroids. [Filter.Transpose] inverts the windowing relation: it spreads a
// compressed representation back onto an arbitrary target mesh, summing for
// each target point the contributions of every window containing it.
//
// # Usage
//
//	s := stride.Stride{
//		Domain:    []float64{1, 1},
//		Start:     []float64{0, 0},
//		Jump:      []float64{0.05, 0.05},
//		Direction: []int{1, 1},
//	}
//	f, err := contconv.New(1, 1, []float64{0.15, 0.15}, s, contconv.WithOptimize(true))
//	z, err := f.Forward(cloud)      // (batch, 1, s.Count())
//	y, err := f.Transpose(z, grid)  // values on grid
//
// # Kernels
//
// Each (output field, input field) pair owns an independent kernel built by
// an [nn.Factory]. The default is a [nn.FeedForward] network with two hidden
// layers of 20 units and tanh activations. Kernels are probed at construction;
// a factory producing a model with the wrong output shape fails [New] with
// [ErrConfiguration].
//
// # Caching
//
// With [WithOptimize] the point selections are computed on the first call and
// reused afterwards, which assumes the mesh does not change between calls.
// The filter then reports [StateCached]. A call whose point counts differ
// from the cached mesh fails with [ErrStaleCache]; [Filter.InvalidateCache]
// returns the filter to [StateReady]. Moving points without changing their
// count under a cached filter is not detected.
//
// A Filter is not safe for concurrent use.
package contconv
