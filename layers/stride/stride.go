package stride

import (
	"fmt"
	"iter"
	"math"
)

// Stride describes how a filter centroid sweeps a bounded domain.
type Stride struct {
	Domain    []float64 `json:"domain"`
	Start     []float64 `json:"start"`
	Jump      []float64 `json:"jump"`
	Direction []int     `json:"direction"`
}

// Validate reports whether the descriptor can produce a sweep.
func (s Stride) Validate() error {
	if err := validateLengths(s); err != nil {
		return err
	}
	for i := range s.Domain {
		if err := validateAxis(i, s.Domain[i], s.Jump[i], s.Direction[i]); err != nil {
			return err
		}
	}
	return nil
}

// Dims returns the number of spatial axes.
func (s Stride) Dims() int {
	return len(s.Domain)
}

// Shape returns the number of centroid positions along each axis.
// Shape of an invalid descriptor is nil.
func (s Stride) Shape() []int {
	if s.Validate() != nil {
		return nil
	}
	shape := make([]int, len(s.Domain))
	for i := range shape {
		shape[i] = axisCount(s.Domain[i], s.Jump[i], s.Direction[i])
	}
	return shape
}

// Count returns the total number of centroid positions, or 0 for an invalid
// descriptor.
func (s Stride) Count() int {
	shape := s.Shape()
	if shape == nil {
		return 0
	}
	n := 1
	for _, c := range shape {
		n *= c
	}
	return n
}

// All returns the sweep as a lazy sequence of (index, position) pairs.
// The sequence can be ranged over any number of times. Each yielded position
// is a fresh slice owned by the caller. An invalid descriptor yields nothing.
func (s Stride) All() iter.Seq2[int, []float64] {
	return func(yield func(int, []float64) bool) {
		shape := s.Shape()
		if shape == nil {
			return
		}
		dims := len(shape)
		step := make([]int, dims)
		for k := 0; ; k++ {
			pos := make([]float64, dims)
			for i := range pos {
				pos[i] = s.coordinate(i, step[i])
			}
			if !yield(k, pos) {
				return
			}

			axis := dims - 1
			for ; axis >= 0; axis-- {
				step[axis]++
				if step[axis] < shape[axis] {
					break
				}
				step[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}

// Positions materializes the whole sweep.
func (s Stride) Positions() ([][]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([][]float64, 0, s.Count())
	for _, pos := range s.All() {
		out = append(out, pos)
	}
	return out, nil
}

// Position returns the k-th centroid of the sweep without iterating.
func (s Stride) Position(k int) ([]float64, error) {
	shape := s.Shape()
	if shape == nil {
		return nil, s.Validate()
	}
	n := s.Count()
	if k < 0 || k >= n {
		return nil, fmt.Errorf("%w: position %d out of range [0,%d)", ErrConfiguration, k, n)
	}
	pos := make([]float64, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		pos[i] = s.coordinate(i, k%shape[i])
		k /= shape[i]
	}
	return pos, nil
}

func (s Stride) coordinate(axis, step int) float64 {
	return s.Start[axis] + float64(s.Direction[axis])*float64(step)*s.Jump[axis]
}

// axisCount returns the number of k >= 0 with k*jump < domain. Fixed axes
// hold a single position.
func axisCount(domain, jump float64, direction int) int {
	if direction == 0 {
		return 1
	}
	n := int(math.Ceil(domain / jump))
	for n > 1 && float64(n-1)*jump >= domain {
		n--
	}
	for float64(n)*jump < domain {
		n++
	}
	return n
}

// FromMap builds a Stride from the dictionary form
// {"domain": ..., "start": ..., "jump": ..., "direction": ...}.
// "jumps" is accepted as an alias of "jump".
func FromMap(m map[string][]float64) (Stride, error) {
	jump, ok := m["jump"]
	if !ok {
		jump = m["jumps"]
	}
	dir := make([]int, len(m["direction"]))
	for i, d := range m["direction"] {
		if d != math.Trunc(d) {
			return Stride{}, fmt.Errorf("%w: axis %d direction must be integral: %v", ErrConfiguration, i, d)
		}
		dir[i] = int(d)
	}
	s := Stride{
		Domain:    append([]float64(nil), m["domain"]...),
		Start:     append([]float64(nil), m["start"]...),
		Jump:      append([]float64(nil), jump...),
		Direction: dir,
	}
	if err := s.Validate(); err != nil {
		return Stride{}, err
	}
	return s, nil
}
