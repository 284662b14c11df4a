package fourier

import (
	"errors"
	"fmt"
)

// Errors returned by the Fourier layers.
var (
	ErrInvalidModes  = errors.New("fourier: invalid modes")
	ErrShapeMismatch = errors.New("fourier: shape mismatch")
	ErrConfiguration = errors.New("fourier: invalid configuration")
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

func validateModes(modes []int) error {
	for i, m := range modes {
		if m <= 0 {
			return fmt.Errorf("%w: axis %d modes must be > 0: %d", ErrInvalidModes, i, m)
		}
	}
	return nil
}

// checkModesFit reports whether modes fit a grid of the given spatial shape.
// Leading axes hold a low and a high band, the last axis a half spectrum.
func checkModesFit(modes, shape []int) error {
	last := len(modes) - 1
	for i, m := range modes {
		n := shape[i]
		if i < last && 2*m > n {
			return fmt.Errorf("%w: axis %d keeps 2x%d modes of %d points", ErrInvalidModes, i, m, n)
		}
		if i == last && m > n/2+1 {
			return fmt.Errorf("%w: axis %d keeps %d modes, at most %d for %d points", ErrInvalidModes, i, m, n/2+1, n)
		}
	}
	return nil
}
