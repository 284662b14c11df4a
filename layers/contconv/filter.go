package contconv

import (
	"fmt"

	"github.com/cwbudde/algo-operator/layers/stride"
	"github.com/cwbudde/algo-operator/nn"
)

// State is the lifecycle state of a Filter.
type State int

const (
	// StateUninitialized is the zero value; the filter cannot run.
	StateUninitialized State = iota
	// StateReady means kernels and stride are configured and no selection
	// is cached.
	StateReady
	// StateCached means point selections are cached for reuse.
	StateCached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateCached:
		return "cached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Filter is a continuous convolutional filter.
type Filter struct {
	inFields  int
	outFields int
	filterDim []float64
	stride    stride.Stride
	positions [][]float64

	// kernels[o*inFields+i] maps input field i to output field o.
	kernels []nn.Model

	cfg   config
	state State

	forwardCache   *indexCache
	transposeCache *indexCache
}

// New creates a filter mapping inputFields fields to outputFields fields
// with a window of extent filterDim swept according to s.
func New(inputFields, outputFields int, filterDim []float64, s stride.Stride, opts ...Option) (*Filter, error) {
	if err := validateFields(inputFields, outputFields); err != nil {
		return nil, err
	}
	if err := validateFilterDim(filterDim); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if s.Dims() != len(filterDim) {
		return nil, fmt.Errorf("%w: stride has %d axes, filter has %d", ErrConfiguration, s.Dims(), len(filterDim))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	dim := len(filterDim)
	if cfg.factory == nil {
		cfg.factory = nn.FeedForwardFactory(dim, nn.DefaultHidden, nn.DefaultActivation, cfg.seed)
	}

	positions, err := s.Positions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	f := &Filter{
		inFields:  inputFields,
		outFields: outputFields,
		filterDim: append([]float64(nil), filterDim...),
		stride:    s,
		positions: positions,
		kernels:   make([]nn.Model, inputFields*outputFields),
		cfg:       cfg,
	}
	for k := range f.kernels {
		m := cfg.factory()
		if err := nn.CheckKernel(m, dim); err != nil {
			return nil, fmt.Errorf("%w: kernel %d: %w", ErrConfiguration, k, err)
		}
		f.kernels[k] = m
	}
	f.state = StateReady
	return f, nil
}

// InputFields returns the number of input fields.
func (f *Filter) InputFields() int {
	return f.inFields
}

// OutputFields returns the number of output fields.
func (f *Filter) OutputFields() int {
	return f.outFields
}

// Dim returns the spatial dimension of the points the filter consumes.
func (f *Filter) Dim() int {
	return len(f.filterDim)
}

// FilterDim returns a copy of the window extent.
func (f *Filter) FilterDim() []float64 {
	return append([]float64(nil), f.filterDim...)
}

// Stride returns the stride descriptor.
func (f *Filter) Stride() stride.Stride {
	return f.stride
}

// NumPositions returns the number of centroid positions.
func (f *Filter) NumPositions() int {
	return len(f.positions)
}

// Positions returns a copy of the centroid positions in sweep order.
func (f *Filter) Positions() [][]float64 {
	out := make([][]float64, len(f.positions))
	for k, p := range f.positions {
		out[k] = append([]float64(nil), p...)
	}
	return out
}

// Kernel returns the kernel mapping input field in to output field out.
func (f *Filter) Kernel(out, in int) nn.Model {
	return f.kernels[out*f.inFields+in]
}

// Optimize reports whether selection caching is enabled.
func (f *Filter) Optimize() bool {
	return f.cfg.optimize
}

// Reduction returns the configured reduction.
func (f *Filter) Reduction() Reduction {
	return f.cfg.reduction
}

// State returns the lifecycle state.
func (f *Filter) State() State {
	return f.state
}

// InvalidateCache drops cached selections. Call it whenever the mesh changes
// under a filter created with WithOptimize.
func (f *Filter) InvalidateCache() {
	f.forwardCache = nil
	f.transposeCache = nil
	if f.state == StateCached {
		f.state = StateReady
	}
}

func (f *Filter) ready() error {
	if f == nil || f.state == StateUninitialized {
		return fmt.Errorf("%w: filter not created with New", ErrConfiguration)
	}
	return nil
}
