package fourier

import "github.com/cwbudde/algo-operator/nn"

// Option configures a Fourier layer.
type Option func(*config)

type config struct {
	seed       int64
	activation nn.Activation
}

func defaultConfig() config {
	return config{
		seed:       1,
		activation: nn.Tanh,
	}
}

// WithSeed seeds the weight initialization.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithActivation sets the activation applied by a Block. Unknown values are
// ignored. It has no effect on a bare SpectralConv.
func WithActivation(a nn.Activation) Option {
	return func(c *config) {
		if a >= nn.Identity && a <= nn.Softplus {
			c.activation = a
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
