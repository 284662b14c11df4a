package contconv

import "github.com/cwbudde/algo-operator/nn"

// Reduction selects how kernel-weighted values are combined.
type Reduction int

const (
	// ReduceSum adds all contributions, the Riemann-sum approximation of
	// the continuous convolution integral.
	ReduceSum Reduction = iota

	// ReduceMean divides each sum by the number of contributing points
	// (forward) or windows (transpose).
	ReduceMean
)

// String returns "sum" or "mean".
func (r Reduction) String() string {
	switch r {
	case ReduceSum:
		return "sum"
	case ReduceMean:
		return "mean"
	default:
		return "unknown"
	}
}

// Option configures a Filter.
type Option func(*config)

type config struct {
	optimize  bool
	factory   nn.Factory
	reduction Reduction
	seed      int64
}

func defaultConfig() config {
	return config{
		reduction: ReduceSum,
		seed:      1,
	}
}

// WithOptimize enables caching of point selections across calls. Only use
// it when the mesh is static.
func WithOptimize(enabled bool) Option {
	return func(c *config) {
		c.optimize = enabled
	}
}

// WithModel sets the kernel factory. It is called once per (output, input)
// field pair. A nil factory keeps the default network.
func WithModel(factory nn.Factory) Option {
	return func(c *config) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// WithReduction sets the reduction. Unknown values are ignored.
func WithReduction(r Reduction) Option {
	return func(c *config) {
		if r == ReduceSum || r == ReduceMean {
			c.reduction = r
		}
	}
}

// WithSeed seeds the default kernel network initialization.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}
