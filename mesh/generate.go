package mesh

import (
	"fmt"
	"math"
	"math/rand"
)

// Grid returns a regular grid with shape[i] points along axis i, starting at
// origin and separated by spacing. Points are ordered row-major: the last
// axis varies fastest.
func Grid(shape []int, origin, spacing []float64) Points {
	dim := len(shape)
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return NewPoints(dim, 0)
		}
		n *= s
	}

	p := NewPoints(dim, n)
	idx := make([]int, dim)
	for k := 0; k < n; k++ {
		c := p.Coord(k)
		for i := range c {
			o, h := 0.0, 1.0
			if i < len(origin) {
				o = origin[i]
			}
			if i < len(spacing) {
				h = spacing[i]
			}
			c[i] = o + float64(idx[i])*h
		}
		for axis := dim - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < shape[axis] {
				break
			}
			idx[axis] = 0
		}
	}
	return p
}

// Lattice returns the integer lattice {0..shape[0]-1} x ... x {0..shape[d-1]-1}.
func Lattice(shape []int) Points {
	return Grid(shape, nil, nil)
}

// FromGrid maps a row-major grid of values (for example an image) to points
// on the integer lattice of the same shape.
func FromGrid(values []float64, shape []int) (Points, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(shape) == 0 || n != len(values) {
		return Points{}, fmt.Errorf("%w: %d values for grid %v", ErrInvalidPoints, len(values), shape)
	}
	p := Lattice(shape)
	copy(p.Values, values)
	return p, nil
}

// Disk returns n points drawn uniformly from the disk of radius r centred at
// (cx, cy).
func Disk(rng *rand.Rand, n int, cx, cy, r float64) Points {
	p := NewPoints(2, n)
	for i := 0; i < n; i++ {
		rho := r * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		c := p.Coord(i)
		c[0] = cx + rho*math.Cos(theta)
		c[1] = cy + rho*math.Sin(theta)
	}
	return p
}

// Uniform returns n points drawn uniformly from [0, hi[0]) x ... x [0, hi[d-1]).
func Uniform(rng *rand.Rand, n int, hi []float64) Points {
	p := NewPoints(len(hi), n)
	for i := 0; i < n; i++ {
		c := p.Coord(i)
		for j := range c {
			c[j] = rng.Float64() * hi[j]
		}
	}
	return p
}
