package fourier

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-operator/tensor"
)

// SpectralConv is a spectral convolution over 1, 2 or 3 spatial axes.
type SpectralConv struct {
	in    int
	out   int
	modes []int

	// weights[blk][(i*out+o)*M+q] is the weight of mode q, row-major over
	// modes, for input field i and output field o. Bit a of blk selects the
	// high band on leading axis a.
	weights [][]complex128

	fft     *transformer
	spectra [][]complex128
	acc     []complex128
}

// NewSpectralConv1D creates a spectral convolution keeping modes frequencies.
func NewSpectralConv1D(in, out, modes int, opts ...Option) (*SpectralConv, error) {
	return newSpectralConvSeeded(in, out, []int{modes}, applyOptions(opts))
}

// NewSpectralConv2D creates a spectral convolution keeping modes[0] low and
// high frequencies on the first axis and modes[1] on the second.
func NewSpectralConv2D(in, out int, modes [2]int, opts ...Option) (*SpectralConv, error) {
	return newSpectralConvSeeded(in, out, modes[:], applyOptions(opts))
}

// NewSpectralConv3D is the three-axis counterpart of NewSpectralConv2D.
func NewSpectralConv3D(in, out int, modes [3]int, opts ...Option) (*SpectralConv, error) {
	return newSpectralConvSeeded(in, out, modes[:], applyOptions(opts))
}

func newSpectralConvSeeded(in, out int, modes []int, cfg config) (*SpectralConv, error) {
	return newSpectralConv(in, out, modes, rand.New(rand.NewSource(cfg.seed)))
}

func newSpectralConv(in, out int, modes []int, rng *rand.Rand) (*SpectralConv, error) {
	if err := validateFields(in, out); err != nil {
		return nil, err
	}
	if err := validateModes(modes); err != nil {
		return nil, err
	}

	s := &SpectralConv{
		in:      in,
		out:     out,
		modes:   append([]int(nil), modes...),
		weights: make([][]complex128, 1<<(len(modes)-1)),
		fft:     newTransformer(),
	}
	scale := 1 / float64(in*out)
	size := in * out * s.modeCount()
	for blk := range s.weights {
		w := make([]complex128, size)
		for k := range w {
			w[k] = complex(scale*rng.Float64(), scale*rng.Float64())
		}
		s.weights[blk] = w
	}
	return s, nil
}

// InputFields returns the number of input fields.
func (s *SpectralConv) InputFields() int {
	return s.in
}

// OutputFields returns the number of output fields.
func (s *SpectralConv) OutputFields() int {
	return s.out
}

// Dim returns the number of spatial axes.
func (s *SpectralConv) Dim() int {
	return len(s.modes)
}

// Modes returns a copy of the retained modes per axis.
func (s *SpectralConv) Modes() []int {
	return append([]int(nil), s.modes...)
}

// Weights returns the complex weight blocks, one per band combination of
// the leading axes. The slices are shared with the layer so callers can
// update them in place.
func (s *SpectralConv) Weights() [][]complex128 {
	return s.weights
}

func (s *SpectralConv) modeCount() int {
	m := 1
	for _, v := range s.modes {
		m *= v
	}
	return m
}

// Forward applies the convolution to x, shaped (batch, in, n1[, n2[, n3]]),
// and returns a tensor shaped (batch, out, n1[, n2[, n3]]).
func (s *SpectralConv) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	spatial, err := s.checkInput(x)
	if err != nil {
		return nil, err
	}
	batch := x.Dim(0)
	size := x.Len() / (batch * s.in)

	y, err := tensor.New(append([]int{batch, s.out}, spatial...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	s.ensureScratch(size)
	strides := rowMajorStrides(spatial)

	for b := 0; b < batch; b++ {
		for i := 0; i < s.in; i++ {
			spec := s.spectra[i]
			for k, v := range x.Slab(b, i) {
				spec[k] = complex(v, 0)
			}
			if err := s.fft.apply(spec, spatial, false); err != nil {
				return nil, err
			}
		}
		for o := 0; o < s.out; o++ {
			clear(s.acc)
			s.mix(o, spatial, strides)
			if err := s.fft.apply(s.acc, spatial, true); err != nil {
				return nil, err
			}
			dst := y.Slab(b, o)
			for k := range dst {
				dst[k] = real(s.acc[k])
			}
		}
	}
	return y, nil
}

func (s *SpectralConv) checkInput(x *tensor.Dense) ([]int, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil input", ErrShapeMismatch)
	}
	if x.Rank() != len(s.modes)+2 {
		return nil, fmt.Errorf("%w: input rank %d, want %d", ErrShapeMismatch, x.Rank(), len(s.modes)+2)
	}
	if x.Dim(1) != s.in {
		return nil, fmt.Errorf("%w: input has %d fields, want %d", ErrShapeMismatch, x.Dim(1), s.in)
	}
	spatial := x.Shape()[2:]
	if err := checkModesFit(s.modes, spatial); err != nil {
		return nil, err
	}
	return spatial, nil
}

func (s *SpectralConv) ensureScratch(size int) {
	if len(s.acc) == size && len(s.spectra) == s.in {
		return
	}
	s.acc = make([]complex128, size)
	s.spectra = make([][]complex128, s.in)
	for i := range s.spectra {
		s.spectra[i] = make([]complex128, size)
	}
}

// mix writes the retained spectrum of output field o into s.acc, weighted
// for a Hermitian inverse along the last axis.
func (s *SpectralConv) mix(o int, shape, strides []int) {
	d := len(s.modes)
	last := d - 1
	nLast := shape[last]
	m := s.modeCount()
	idx := make([]int, d)

	for blk, w := range s.weights {
		for q := 0; q < m; q++ {
			r := q
			for a := last; a >= 0; a-- {
				idx[a] = r % s.modes[a]
				r /= s.modes[a]
			}
			off := 0
			for a, k := range idx {
				if a < last && blk>>a&1 == 1 {
					k += shape[a] - s.modes[a]
				}
				off += k * strides[a]
			}

			var sum complex128
			for i := 0; i < s.in; i++ {
				sum += s.spectra[i][off] * w[(i*s.out+o)*m+q]
			}
			// Bins other than DC and the even-length Nyquist bin stand for
			// themselves and their conjugate mirror.
			if k := idx[last]; k != 0 && (nLast%2 != 0 || k != nLast/2) {
				sum *= 2
			}
			s.acc[off] = sum
		}
	}
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}
	return strides
}
