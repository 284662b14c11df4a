// Package nn provides the trainable kernel models used by the continuous
// convolutional filter: the [Model] capability interface, the [Factory]
// constructor capability and a small fully connected [FeedForward] network.
//
// Batches are gonum matrices with one sample per row. A kernel model maps an
// n x d batch of relative coordinates to an n x 1 batch of responses.
package nn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a batch or a model output has the wrong shape.
var ErrShape = errors.New("nn: shape mismatch")

// Model maps a batch of input rows to a batch of output rows.
// Implementations must not retain x. x always has at least one row.
type Model interface {
	Forward(x *mat.Dense) (*mat.Dense, error)
}

// Factory builds a fresh, independent Model. It is called once per kernel
// slot so that slots never share parameters.
type Factory func() Model

// Trainable is implemented by models exposing their parameters for
// external gradient updates.
type Trainable interface {
	Parameters() []*mat.Dense
}

// CheckKernel evaluates m on a two-row batch of zero coordinates of width
// dim and verifies that it returns one response per row.
func CheckKernel(m Model, dim int) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrShape)
	}
	if dim <= 0 {
		return fmt.Errorf("%w: input width must be > 0: %d", ErrShape, dim)
	}
	out, err := m.Forward(mat.NewDense(2, dim, nil))
	if err != nil {
		return err
	}
	if out == nil {
		return fmt.Errorf("%w: model returned nil output", ErrShape)
	}
	if r, c := out.Dims(); r != 2 || c != 1 {
		return fmt.Errorf("%w: kernel output is %dx%d, want 2x1", ErrShape, r, c)
	}
	return nil
}

// ConstantModel answers every row with Value.
type ConstantModel struct {
	Value float64
}

// Forward implements Model.
func (m *ConstantModel) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, _ := x.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, m.Value)
	}
	return out, nil
}

// Constant returns a Factory of ConstantModel kernels.
func Constant(v float64) Factory {
	return func() Model {
		return &ConstantModel{Value: v}
	}
}

// ModelFunc adapts a scalar function of one input row to a Model.
type ModelFunc func(x []float64) float64

// Forward implements Model.
func (f ModelFunc) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, _ := x.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, f(x.RawRowView(i)))
	}
	return out, nil
}
