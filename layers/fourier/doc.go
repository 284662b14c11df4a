// Package fourier implements spectral convolutions and Fourier neural
// operator blocks on regular 1D, 2D and 3D grids.
//
// A [SpectralConv] transforms every input field to the frequency domain,
// keeps a fixed number of low-frequency modes per axis, mixes fields with a
// learned complex weight per retained mode and transforms back:
//
//	Y_o(k) = Σ_i X_i(k) · W_{i,o}(k)   for retained k, 0 otherwise
//
// On the last axis the lowest m modes of the half spectrum are kept, as with
// a real FFT. On every leading axis both the lowest and the highest m modes
// are kept, each band combination owning its own weight block. The inverse
// treats the retained spectrum as Hermitian along the last axis so the
// output is real.
//
// A [Block] adds a pointwise linear channel mix with bias to the spectral
// path and applies an activation:
//
//	y = act(spectral(x) + W·x + b)
//
// Inputs are [tensor.Dense] values shaped (batch, fields, n1[, n2[, n3]]).
// FFT plans are created per axis length on first use and kept for the
// lifetime of the layer. Layers are not safe for concurrent use.
package fourier
