package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestActivations(t *testing.T) {
	tests := []struct {
		act  Activation
		in   float64
		want float64
	}{
		{Identity, -2, -2},
		{ReLU, -2, 0},
		{ReLU, 3, 3},
		{Tanh, 0, 0},
		{Sigmoid, 0, 0.5},
		{Softplus, 0, math.Ln2},
		{Softplus, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			if got := tt.act.Apply(tt.in); math.Abs(got-tt.want) > 1e-3 {
				t.Fatalf("%s(%v) = %v, want %v", tt.act, tt.in, got, tt.want)
			}
		})
	}
}

func TestParseActivation(t *testing.T) {
	for a, name := range activationNames {
		got, err := ParseActivation(" " + name + " ")
		if err != nil || got != a {
			t.Fatalf("ParseActivation(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseActivation("gelu"); err == nil {
		t.Fatal("expected error for unknown activation")
	}
}

func TestFeedForwardShape(t *testing.T) {
	ff, err := NewFeedForward(2, 1, DefaultHidden, DefaultActivation, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x := mat.NewDense(5, 2, []float64{0, 0, 0.1, 0.2, -0.3, 0.4, 1, 1, -1, -1})
	y, err := ff.Forward(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, c := y.Dims(); r != 5 || c != 1 {
		t.Fatalf("output dims = %dx%d, want 5x1", r, c)
	}
	if len(ff.Parameters()) != 6 {
		t.Fatalf("parameters = %d, want 6", len(ff.Parameters()))
	}

	if _, err := ff.Forward(mat.NewDense(1, 3, nil)); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestFeedForwardLinearWithoutHidden(t *testing.T) {
	ff, err := NewFeedForward(2, 1, nil, Tanh, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := ff.Parameters()
	params[0].Set(0, 0, 2)
	params[0].Set(1, 0, -1)
	params[1].Set(0, 0, 0.5)

	y, err := ff.Forward(mat.NewDense(1, 2, []float64{3, 4}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := y.At(0, 0); math.Abs(got-2.5) > 1e-12 {
		t.Fatalf("output = %v, want 2.5", got)
	}
}

func TestFeedForwardFactoryFreshInstances(t *testing.T) {
	factory := FeedForwardFactory(2, []int{4}, ReLU, 3)
	a, b := factory(), factory()
	if a == b {
		t.Fatal("factory returned the same instance twice")
	}
	wa := a.(*FeedForward).Parameters()[0]
	wb := b.(*FeedForward).Parameters()[0]
	if mat.Equal(wa, wb) {
		t.Fatal("kernels share identical parameters")
	}

	again := FeedForwardFactory(2, []int{4}, ReLU, 3)()
	if !mat.Equal(wa, again.(*FeedForward).Parameters()[0]) {
		t.Fatal("factory is not reproducible for a fixed seed")
	}
}

type wideModel struct{}

func (wideModel) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, _ := x.Dims()
	return mat.NewDense(r, 3, nil), nil
}

func TestCheckKernel(t *testing.T) {
	if err := CheckKernel(Constant(1)(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckKernel(ModelFunc(func(x []float64) float64 { return x[0] }), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckKernel(wideModel{}, 2); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if err := CheckKernel(nil, 2); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	ff, _ := NewFeedForward(2, 1, nil, Tanh, nil)
	if err := CheckKernel(ff, 3); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for width mismatch, got %v", err)
	}
}
