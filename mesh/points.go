// Package mesh holds unstructured point sets and the batched, multi-channel
// point clouds consumed and produced by the continuous convolutional filter.
//
// A [Points] value is one channel of one batch element: n coordinates of
// dimension Dim stored row-major in Coords, and one field value per point in
// Values. A [Cloud] indexes Points by batch element and channel. Channels of
// the same batch element may hold different numbers of points.
package mesh

import (
	"errors"
	"fmt"
)

// ErrInvalidPoints is returned when coordinates and values disagree in size.
var ErrInvalidPoints = errors.New("mesh: invalid points")

// Points is an ordered point set with one scalar field value per point.
// Values may be nil for coordinate-only sets such as resampling targets.
type Points struct {
	Dim    int
	Coords []float64
	Values []float64
}

// NewPoints allocates n zeroed points of the given dimension.
func NewPoints(dim, n int) Points {
	if dim < 0 {
		dim = 0
	}
	if n < 0 {
		n = 0
	}
	return Points{
		Dim:    dim,
		Coords: make([]float64, n*dim),
		Values: make([]float64, n),
	}
}

// Len returns the number of points.
func (p Points) Len() int {
	if p.Dim <= 0 {
		return 0
	}
	return len(p.Coords) / p.Dim
}

// Coord returns the coordinate of point i as a view into Coords.
func (p Points) Coord(i int) []float64 {
	return p.Coords[i*p.Dim : (i+1)*p.Dim : (i+1)*p.Dim]
}

// Value returns the field value of point i, or 0 for coordinate-only sets.
func (p Points) Value(i int) float64 {
	if p.Values == nil {
		return 0
	}
	return p.Values[i]
}

// Validate checks that Coords is a whole number of points and that Values,
// when present, has one entry per point.
func (p Points) Validate() error {
	if p.Dim <= 0 {
		return fmt.Errorf("%w: dimension must be > 0: %d", ErrInvalidPoints, p.Dim)
	}
	if len(p.Coords)%p.Dim != 0 {
		return fmt.Errorf("%w: %d coordinates is not a multiple of dimension %d", ErrInvalidPoints, len(p.Coords), p.Dim)
	}
	if p.Values != nil && len(p.Values) != len(p.Coords)/p.Dim {
		return fmt.Errorf("%w: %d values for %d points", ErrInvalidPoints, len(p.Values), len(p.Coords)/p.Dim)
	}
	return nil
}

// Clone returns a deep copy.
func (p Points) Clone() Points {
	out := Points{Dim: p.Dim, Coords: append([]float64(nil), p.Coords...)}
	if p.Values != nil {
		out.Values = append([]float64(nil), p.Values...)
	}
	return out
}

// WithoutValues returns a coordinate-only view sharing Coords.
func (p Points) WithoutValues() Points {
	return Points{Dim: p.Dim, Coords: p.Coords}
}

// Sample sets every value to f evaluated at the point coordinate.
func (p *Points) Sample(f func(x []float64) float64) {
	n := p.Len()
	if len(p.Values) != n {
		p.Values = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		p.Values[i] = f(p.Coord(i))
	}
}
