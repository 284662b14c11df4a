package fourier

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-operator/internal/testutil"
	"github.com/cwbudde/algo-operator/nn"
	"github.com/cwbudde/algo-operator/tensor"
)

const (
	inFields  = 3
	outFields = 4
	batch     = 5
)

func randomTensor(t testing.TB, seed int64, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.New(shape...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range x.Data() {
		x.Data()[i] = rng.Float64()
	}
	return x
}

func setWeights(s *SpectralConv, v complex128) {
	for _, w := range s.Weights() {
		for k := range w {
			w[k] = v
		}
	}
}

func TestConstructors(t *testing.T) {
	if _, err := NewBlock1D(inFields, outFields, 5); err != nil {
		t.Fatalf("1D: unexpected error: %v", err)
	}
	if _, err := NewBlock2D(inFields, outFields, [2]int{5, 4}); err != nil {
		t.Fatalf("2D: unexpected error: %v", err)
	}
	b, err := NewBlock3D(inFields, outFields, [3]int{5, 4, 4})
	if err != nil {
		t.Fatalf("3D: unexpected error: %v", err)
	}
	if got := len(b.Spectral().Weights()); got != 4 {
		t.Fatalf("3D weight blocks = %d, want 4", got)
	}
	if got := len(b.Spectral().Weights()[0]); got != inFields*outFields*5*4*4 {
		t.Fatalf("3D block size = %d", got)
	}
	if b.Activation() != nn.Tanh {
		t.Fatalf("default activation = %v, want tanh", b.Activation())
	}
}

func TestConstructorErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"no input fields", func() error { _, err := NewSpectralConv1D(0, 1, 2); return err }, ErrConfiguration},
		{"no output fields", func() error { _, err := NewBlock1D(1, 0, 2); return err }, ErrConfiguration},
		{"zero modes", func() error { _, err := NewSpectralConv1D(1, 1, 0); return err }, ErrInvalidModes},
		{"negative modes 2D", func() error { _, err := NewBlock2D(1, 1, [2]int{3, -1}); return err }, ErrInvalidModes},
		{"zero modes 3D", func() error { _, err := NewSpectralConv3D(1, 1, [3]int{0, 1, 1}); return err }, ErrInvalidModes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBlockForwardShapes(t *testing.T) {
	b1, _ := NewBlock1D(inFields, outFields, 4)
	b2, _ := NewBlock2D(inFields, outFields, [2]int{5, 4})
	b3, _ := NewBlock3D(inFields, outFields, [3]int{5, 4, 4})

	tests := []struct {
		name  string
		block *Block
		shape []int
	}{
		{"1D", b1, []int{batch, inFields, 10}},
		{"2D", b2, []int{batch, inFields, 10, 10}},
		{"3D", b3, []int{batch, inFields, 10, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := tt.block.Forward(randomTensor(t, 1, tt.shape...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := append([]int{batch, outFields}, tt.shape[2:]...)
			got := y.Shape()
			if len(got) != len(want) {
				t.Fatalf("shape = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("shape = %v, want %v", got, want)
				}
			}
			testutil.RequireFinite(t, y.Data())
			for _, v := range y.Data() {
				if v < -1 || v > 1 {
					t.Fatalf("tanh output %v out of range", v)
				}
			}
		})
	}
}

func TestForwardErrors(t *testing.T) {
	s, _ := NewSpectralConv2D(2, 1, [2]int{3, 3})
	tests := []struct {
		name string
		x    *tensor.Dense
		want error
	}{
		{"nil", nil, ErrShapeMismatch},
		{"rank", randomTensor(t, 1, 1, 2, 8), ErrShapeMismatch},
		{"fields", randomTensor(t, 1, 1, 3, 8, 8), ErrShapeMismatch},
		{"leading axis too short", randomTensor(t, 1, 1, 2, 5, 8), ErrInvalidModes},
		{"last axis too short", randomTensor(t, 1, 1, 2, 8, 3), ErrInvalidModes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Forward(tt.x); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSpectralAllModesIsIdentity(t *testing.T) {
	tests := []struct {
		name  string
		conv  func() (*SpectralConv, error)
		shape []int
	}{
		{"1D even", func() (*SpectralConv, error) { return NewSpectralConv1D(1, 1, 6) }, []int{2, 1, 10}},
		{"1D odd", func() (*SpectralConv, error) { return NewSpectralConv1D(1, 1, 5) }, []int{2, 1, 9}},
		{"2D", func() (*SpectralConv, error) { return NewSpectralConv2D(1, 1, [2]int{5, 6}) }, []int{2, 1, 10, 10}},
		{"3D", func() (*SpectralConv, error) { return NewSpectralConv3D(1, 1, [3]int{2, 3, 3}) }, []int{1, 1, 4, 6, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.conv()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			setWeights(s, 1)
			x := randomTensor(t, 7, tt.shape...)
			y, err := s.Forward(x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, y.Data(), x.Data(), 1e-10)
		})
	}
}

func TestSpectralLowPass(t *testing.T) {
	const n = 16
	s, err := NewSpectralConv1D(1, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	setWeights(s, 1)

	data := make([]float64, n)
	want := make([]float64, n)
	for k := range data {
		slow := 0.5 + math.Cos(2*math.Pi*float64(k)/n)
		data[k] = slow + math.Sin(2*math.Pi*5*float64(k)/n)
		want[k] = slow
	}
	x, _ := tensor.FromData(data, 1, 1, n)
	y, err := s.Forward(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), want, 1e-10)
}

func TestSpectralMixesFields(t *testing.T) {
	// A real weight w on every mode scales the retained content by w, and
	// output fields sum over input fields.
	s, _ := NewSpectralConv1D(2, 1, 5)
	setWeights(s, 0.5)

	x := randomTensor(t, 3, 1, 2, 8)
	y, err := s.Forward(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]float64, 8)
	for k := range want {
		want[k] = 0.5 * (x.At(0, 0, k) + x.At(0, 1, k))
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), want, 1e-10)
}

func TestBlockZeroSpectralIsPointwise(t *testing.T) {
	for _, act := range []nn.Activation{nn.Tanh, nn.ReLU, nn.Identity} {
		t.Run(act.String(), func(t *testing.T) {
			b, err := NewBlock2D(inFields, outFields, [2]int{2, 3}, WithActivation(act), WithSeed(4))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			setWeights(b.Spectral(), 0)

			x := randomTensor(t, 9, 2, inFields, 6, 6)
			y, err := b.Forward(x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			params := b.Parameters()
			w, bias := params[0], params[1]
			for n := 0; n < 2; n++ {
				for o := 0; o < outFields; o++ {
					for r := 0; r < 6; r++ {
						for c := 0; c < 6; c++ {
							v := bias.At(o, 0)
							for i := 0; i < inFields; i++ {
								v += w.At(o, i) * x.At(n, i, r, c)
							}
							want := act.Apply(v)
							if got := y.At(n, o, r, c); math.Abs(got-want) > 1e-12 {
								t.Fatalf("(%d, %d, %d, %d) = %v, want %v", n, o, r, c, got, want)
							}
						}
					}
				}
			}
		})
	}
}

func TestSeedDeterminism(t *testing.T) {
	x := randomTensor(t, 2, batch, inFields, 10)
	run := func(seed int64) []float64 {
		b, err := NewBlock1D(inFields, outFields, 4, WithSeed(seed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		y, err := b.Forward(x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return y.Data()
	}

	a, b := run(11), run(11)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
	if d, _ := testutil.MaxAbsDiff(a, run(12)); d == 0 {
		t.Fatal("different seeds produced identical outputs")
	}
}

func TestWithActivationIgnoresUnknown(t *testing.T) {
	b, err := NewBlock1D(1, 1, 2, WithActivation(nn.Activation(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Activation() != nn.Tanh {
		t.Fatalf("activation = %v, want tanh", b.Activation())
	}
}
