package contconv

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the filter.
var (
	ErrConfiguration = errors.New("contconv: invalid configuration")
	ErrShapeMismatch = errors.New("contconv: shape mismatch")
	ErrStaleCache    = errors.New("contconv: cached selection does not match mesh")
)

func validateFields(in, out int) error {
	if in <= 0 {
		return fmt.Errorf("%w: input fields must be > 0: %d", ErrConfiguration, in)
	}
	if out <= 0 {
		return fmt.Errorf("%w: output fields must be > 0: %d", ErrConfiguration, out)
	}
	return nil
}

func validateFilterDim(dim []float64) error {
	if len(dim) == 0 {
		return fmt.Errorf("%w: empty filter dimension", ErrConfiguration)
	}
	for i, v := range dim {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: filter dimension %d must be finite and > 0: %v", ErrConfiguration, i, v)
		}
	}
	return nil
}
