package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Default kernel network layout.
var (
	DefaultHidden     = []int{20, 20}
	DefaultActivation = Tanh
)

// FeedForward is a fully connected network. Hidden layers apply the
// activation, the output layer is linear.
type FeedForward struct {
	weights []*mat.Dense // [in x out] per layer
	biases  []*mat.Dense // [1 x out] per layer
	act     Activation
}

// NewFeedForward builds a network in -> hidden... -> out. Weights and biases
// are drawn uniformly from [-1/sqrt(fanIn), 1/sqrt(fanIn)].
func NewFeedForward(in, out int, hidden []int, act Activation, rng *rand.Rand) (*FeedForward, error) {
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("%w: input and output widths must be > 0: %d, %d", ErrShape, in, out)
	}
	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, in)
	for i, h := range hidden {
		if h <= 0 {
			return nil, fmt.Errorf("%w: hidden layer %d width must be > 0: %d", ErrShape, i, h)
		}
		sizes = append(sizes, h)
	}
	sizes = append(sizes, out)
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	ff := &FeedForward{act: act}
	for l := 0; l+1 < len(sizes); l++ {
		fanIn, fanOut := sizes[l], sizes[l+1]
		bound := 1 / math.Sqrt(float64(fanIn))
		w := mat.NewDense(fanIn, fanOut, nil)
		b := mat.NewDense(1, fanOut, nil)
		for i := 0; i < fanIn; i++ {
			for j := 0; j < fanOut; j++ {
				w.Set(i, j, (2*rng.Float64()-1)*bound)
			}
		}
		for j := 0; j < fanOut; j++ {
			b.Set(0, j, (2*rng.Float64()-1)*bound)
		}
		ff.weights = append(ff.weights, w)
		ff.biases = append(ff.biases, b)
	}
	return ff, nil
}

// FeedForwardFactory returns a Factory producing kernels with input width
// dim and a single output. All kernels draw from one seeded source, so each
// call yields distinct parameters and the sequence is reproducible.
func FeedForwardFactory(dim int, hidden []int, act Activation, seed int64) Factory {
	rng := rand.New(rand.NewSource(seed))
	hidden = append([]int(nil), hidden...)
	return func() Model {
		ff, err := NewFeedForward(dim, 1, hidden, act, rng)
		if err != nil {
			return nil
		}
		return ff
	}
}

// Inputs returns the input width.
func (f *FeedForward) Inputs() int {
	r, _ := f.weights[0].Dims()
	return r
}

// Outputs returns the output width.
func (f *FeedForward) Outputs() int {
	_, c := f.weights[len(f.weights)-1].Dims()
	return c
}

// Activation returns the hidden-layer activation.
func (f *FeedForward) Activation() Activation {
	return f.act
}

// Parameters returns weights and biases interleaved per layer. The matrices
// are live: updating them changes the network.
func (f *FeedForward) Parameters() []*mat.Dense {
	out := make([]*mat.Dense, 0, 2*len(f.weights))
	for l := range f.weights {
		out = append(out, f.weights[l], f.biases[l])
	}
	return out
}

// Forward implements Model.
func (f *FeedForward) Forward(x *mat.Dense) (*mat.Dense, error) {
	if _, c := x.Dims(); c != f.Inputs() {
		return nil, fmt.Errorf("%w: input has %d columns, want %d", ErrShape, c, f.Inputs())
	}

	h := x
	last := len(f.weights) - 1
	for l, w := range f.weights {
		var z mat.Dense
		z.Mul(h, w)
		b := f.biases[l].RawRowView(0)
		act := f.act
		if l == last {
			act = Identity
		}
		z.Apply(func(_, j int, v float64) float64 {
			return act.Apply(v + b[j])
		}, &z)
		h = &z
	}
	return h, nil
}
