package nn

import (
	"fmt"
	"strings"
)

// Activation selects the element-wise nonlinearity of a hidden layer.
type Activation int

const (
	Identity Activation = iota
	ReLU
	Tanh
	Sigmoid
	Softplus
)

var activationNames = map[Activation]string{
	Identity: "identity",
	ReLU:     "relu",
	Tanh:     "tanh",
	Sigmoid:  "sigmoid",
	Softplus: "softplus",
}

// String returns the lower-case activation name.
func (a Activation) String() string {
	if s, ok := activationNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// ParseActivation resolves a name as returned by Activation.String.
func ParseActivation(name string) (Activation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, s := range activationNames {
		if s == name {
			return a, nil
		}
	}
	return Identity, fmt.Errorf("nn: unknown activation %q", name)
}

// Apply evaluates the activation at v.
func (a Activation) Apply(v float64) float64 {
	switch a {
	case ReLU:
		if v < 0 {
			return 0
		}
		return v
	case Tanh:
		return mathTanh(v)
	case Sigmoid:
		return 1 / (1 + mathExp(-v))
	case Softplus:
		// log(1 + e^v) overflows for large v; it is v to double precision there.
		if v > 30 {
			return v
		}
		return mathLog1p(mathExp(v))
	default:
		return v
	}
}

// ApplySlice evaluates the activation in place over buf.
func (a Activation) ApplySlice(buf []float64) {
	if a == Identity {
		return
	}
	for i, v := range buf {
		buf[i] = a.Apply(v)
	}
}
