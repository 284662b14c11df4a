package fourier

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// transformer applies separable N-D FFTs to row-major complex grids.
type transformer struct {
	plans map[int]*algofft.Plan[complex128]
	line  []complex128
}

func newTransformer() *transformer {
	return &transformer{plans: make(map[int]*algofft.Plan[complex128])}
}

func (t *transformer) plan(n int) (*algofft.Plan[complex128], error) {
	if p, ok := t.plans[n]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fourier: failed to create FFT plan of size %d: %w", n, err)
	}
	t.plans[n] = p
	return p, nil
}

// apply transforms data, a grid of the given shape, along every axis in
// place. The inverse is normalized.
func (t *transformer) apply(data []complex128, shape []int, inverse bool) error {
	stride := 1
	for axis := len(shape) - 1; axis >= 0; axis-- {
		n := shape[axis]
		if n > 1 {
			p, err := t.plan(n)
			if err != nil {
				return err
			}
			if cap(t.line) < n {
				t.line = make([]complex128, n)
			}
			line := t.line[:n]

			span := n * stride
			for base := 0; base < len(data); base += span {
				for off := base; off < base+stride; off++ {
					for k := range line {
						line[k] = data[off+k*stride]
					}
					if inverse {
						err = p.Inverse(line, line)
					} else {
						err = p.Forward(line, line)
					}
					if err != nil {
						return fmt.Errorf("fourier: axis %d: %w", axis, err)
					}
					for k, v := range line {
						data[off+k*stride] = v
					}
				}
			}
		}
		stride *= n
	}
	return nil
}
