package fourier

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-operator/nn"
	"github.com/cwbudde/algo-operator/tensor"
)

var _ nn.Trainable = (*Block)(nil)

// Block is a Fourier neural operator layer: act(spectral(x) + W·x + b).
type Block struct {
	spectral   *SpectralConv
	weight     *mat.Dense // out x in
	bias       *mat.Dense // out x 1
	activation nn.Activation

	scratch []float64
}

// NewBlock1D creates a one-axis Fourier block keeping modes frequencies.
func NewBlock1D(in, out, modes int, opts ...Option) (*Block, error) {
	return newBlock(in, out, []int{modes}, applyOptions(opts))
}

// NewBlock2D creates a two-axis Fourier block.
func NewBlock2D(in, out int, modes [2]int, opts ...Option) (*Block, error) {
	return newBlock(in, out, modes[:], applyOptions(opts))
}

// NewBlock3D creates a three-axis Fourier block.
func NewBlock3D(in, out int, modes [3]int, opts ...Option) (*Block, error) {
	return newBlock(in, out, modes[:], applyOptions(opts))
}

func newBlock(in, out int, modes []int, cfg config) (*Block, error) {
	rng := rand.New(rand.NewSource(cfg.seed))
	spectral, err := newSpectralConv(in, out, modes, rng)
	if err != nil {
		return nil, err
	}

	bound := 1 / math.Sqrt(float64(in))
	w := make([]float64, out*in)
	for k := range w {
		w[k] = (2*rng.Float64() - 1) * bound
	}
	bias := make([]float64, out)
	for k := range bias {
		bias[k] = (2*rng.Float64() - 1) * bound
	}

	return &Block{
		spectral:   spectral,
		weight:     mat.NewDense(out, in, w),
		bias:       mat.NewDense(out, 1, bias),
		activation: cfg.activation,
	}, nil
}

// Spectral returns the spectral path.
func (b *Block) Spectral() *SpectralConv {
	return b.spectral
}

// Activation returns the output activation.
func (b *Block) Activation() nn.Activation {
	return b.activation
}

// Parameters returns the pointwise weight (out x in) and bias (out x 1).
// The spectral weights are available through Spectral().Weights().
func (b *Block) Parameters() []*mat.Dense {
	return []*mat.Dense{b.weight, b.bias}
}

// Forward applies the block to x, shaped (batch, in, n1[, n2[, n3]]).
func (b *Block) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	y, err := b.spectral.Forward(x)
	if err != nil {
		return nil, err
	}

	batch := x.Dim(0)
	in, out := b.spectral.in, b.spectral.out
	size := x.Len() / (batch * in)
	if cap(b.scratch) < size {
		b.scratch = make([]float64, size)
	}
	tmp := b.scratch[:size]

	for n := 0; n < batch; n++ {
		for o := 0; o < out; o++ {
			dst := y.Slab(n, o)
			w := b.weight.RawRowView(o)
			for i := 0; i < in; i++ {
				vecmath.ScaleBlock(tmp, x.Slab(n, i), w[i])
				vecmath.AddBlockInPlace(dst, tmp)
			}
			bias := b.bias.At(o, 0)
			for k := range dst {
				dst[k] += bias
			}
			b.activation.ApplySlice(dst)
		}
	}
	return y, nil
}
