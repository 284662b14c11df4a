package mesh

import "fmt"

// Cloud is a batch of multi-channel point sets indexed [batch][channel].
type Cloud [][]Points

// Batch returns the number of batch elements.
func (c Cloud) Batch() int {
	return len(c)
}

// Channels returns the channel count of batch element 0, or 0 for an empty
// cloud.
func (c Cloud) Channels() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Validate checks that every batch element holds the given number of
// channels and that every channel has the given point dimension. A channel
// count of 0 skips the channel check.
func (c Cloud) Validate(channels, dim int) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidPoints)
	}
	for b, elem := range c {
		if channels > 0 && len(elem) != channels {
			return fmt.Errorf("%w: batch %d has %d channels, want %d", ErrInvalidPoints, b, len(elem), channels)
		}
		for ch, p := range elem {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("batch %d channel %d: %w", b, ch, err)
			}
			if p.Dim != dim {
				return fmt.Errorf("%w: batch %d channel %d has dimension %d, want %d", ErrInvalidPoints, b, ch, p.Dim, dim)
			}
		}
	}
	return nil
}

// Broadcast repeats p over batch elements and channels. All entries share
// the underlying slices of p.
func Broadcast(p Points, batch, channels int) Cloud {
	c := make(Cloud, batch)
	for b := range c {
		c[b] = make([]Points, channels)
		for ch := range c[b] {
			c[b][ch] = p
		}
	}
	return c
}

// Values returns the field values as [batch][channel][point].
func (c Cloud) Values() [][][]float64 {
	out := make([][][]float64, len(c))
	for b, elem := range c {
		out[b] = make([][]float64, len(elem))
		for ch, p := range elem {
			out[b][ch] = append([]float64(nil), p.Values...)
		}
	}
	return out
}

// Counts returns the number of points per [batch][channel].
func (c Cloud) Counts() [][]int {
	out := make([][]int, len(c))
	for b, elem := range c {
		out[b] = make([]int, len(elem))
		for ch, p := range elem {
			out[b][ch] = p.Len()
		}
	}
	return out
}
