package stride

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration is returned for malformed stride descriptors.
var ErrConfiguration = errors.New("stride: invalid configuration")

func validateLengths(s Stride) error {
	n := len(s.Domain)
	if n == 0 {
		return fmt.Errorf("%w: empty domain", ErrConfiguration)
	}
	if len(s.Start) != n || len(s.Jump) != n || len(s.Direction) != n {
		return fmt.Errorf("%w: domain/start/jump/direction lengths %d/%d/%d/%d differ",
			ErrConfiguration, n, len(s.Start), len(s.Jump), len(s.Direction))
	}
	return nil
}

func validateAxis(axis int, domain, jump float64, direction int) error {
	switch direction {
	case -1, 0, 1:
	default:
		return fmt.Errorf("%w: axis %d direction must be -1, 0 or 1: %d", ErrConfiguration, axis, direction)
	}
	if direction == 0 {
		return nil
	}
	if !(jump > 0) || math.IsInf(jump, 0) {
		return fmt.Errorf("%w: axis %d jump must be finite and > 0: %v", ErrConfiguration, axis, jump)
	}
	if !(domain > 0) || math.IsInf(domain, 0) {
		return fmt.Errorf("%w: axis %d domain must be finite and > 0: %v", ErrConfiguration, axis, domain)
	}
	return nil
}
