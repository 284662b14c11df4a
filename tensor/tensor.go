// Package tensor provides a minimal dense, row-major float64 tensor used as
// the batch container of the Fourier layers.
package tensor

import (
	"errors"
	"fmt"
)

// ErrShape is returned when a shape is invalid or does not match the data.
var ErrShape = errors.New("tensor: invalid shape")

// Dense is a row-major tensor: the last axis is contiguous.
type Dense struct {
	shape   []int
	strides []int
	data    []float64
}

// New allocates a zero tensor of the given shape.
func New(shape ...int) (*Dense, error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	return newDense(shape, make([]float64, n)), nil
}

// FromData wraps data with the given shape without copying.
func FromData(data []float64, shape ...int) (*Dense, error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(data), shape)
	}
	return newDense(shape, data), nil
}

func newDense(shape []int, data []float64) *Dense {
	t := &Dense{
		shape:   append([]int(nil), shape...),
		strides: make([]int, len(shape)),
		data:    data,
	}
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		t.strides[i] = step
		step *= shape[i]
	}
	return t
}

func volume(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: empty shape", ErrShape)
	}
	n := 1
	for i, s := range shape {
		if s <= 0 {
			return 0, fmt.Errorf("%w: axis %d has size %d", ErrShape, i, s)
		}
		n *= s
	}
	return n, nil
}

// Shape returns a copy of the shape.
func (t *Dense) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Rank returns the number of axes.
func (t *Dense) Rank() int {
	return len(t.shape)
}

// Dim returns the size of axis i.
func (t *Dense) Dim(i int) int {
	return t.shape[i]
}

// Len returns the number of elements.
func (t *Dense) Len() int {
	return len(t.data)
}

// Data returns the backing slice.
func (t *Dense) Data() []float64 {
	return t.data
}

// Offset returns the position of idx in Data. It panics when idx does not
// address an element.
func (t *Dense) Offset(idx ...int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, k := range idx {
		if k < 0 || k >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range on axis %d of size %d", k, i, t.shape[i]))
		}
		off += k * t.strides[i]
	}
	return off
}

// At returns the element at idx.
func (t *Dense) At(idx ...int) float64 {
	return t.data[t.Offset(idx...)]
}

// Set stores v at idx.
func (t *Dense) Set(v float64, idx ...int) {
	t.data[t.Offset(idx...)] = v
}

// Slab returns the contiguous block addressed by a prefix of indices, for
// example the spatial field of one (batch, channel) pair. It shares Data.
func (t *Dense) Slab(prefix ...int) []float64 {
	if len(prefix) > len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(prefix), len(t.shape)))
	}
	full := make([]int, len(t.shape))
	copy(full, prefix)
	off := t.Offset(full...)
	size := len(t.data)
	if len(prefix) > 0 {
		size = t.strides[len(prefix)-1]
	}
	return t.data[off : off+size : off+size]
}
