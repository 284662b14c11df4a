package contconv

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-operator/mesh"
)

// Forward convolves the input cloud, shaped (batch, InputFields, n, Dim),
// and returns the compressed representation shaped (batch, OutputFields,
// NumPositions, Dim) whose coordinates are the centroids.
//
// Every input field must carry values. Windows selecting no point yield 0.
func (f *Filter) Forward(in mesh.Cloud) (mesh.Cloud, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	if err := in.Validate(f.inFields, f.Dim()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	for b, elem := range in {
		for i, p := range elem {
			if p.Values == nil && p.Len() > 0 {
				return nil, fmt.Errorf("%w: batch %d field %d has no values", ErrShapeMismatch, b, i)
			}
		}
	}

	sets, err := f.selections(&f.forwardCache, in, len(f.positions), func(int) [][]float64 {
		return f.positions
	})
	if err != nil {
		return nil, err
	}

	out := f.newCompressed(len(in), f.outFields)
	var vals []float64
	for b, elem := range in {
		for i, p := range elem {
			for s, centroid := range f.positions {
				idx := sets[b][i][s]
				if len(idx) == 0 {
					continue
				}
				x := offsets(p, idx, centroid)
				vals = gather(vals, p.Values, idx)
				for o := 0; o < f.outFields; o++ {
					r, err := respond(f.Kernel(o, i), x)
					if err != nil {
						return nil, fmt.Errorf("contconv: kernel (%d, %d): %w", o, i, err)
					}
					partial := vecmath.DotProduct(vals, r)
					if f.cfg.reduction == ReduceMean {
						partial /= float64(len(idx))
					}
					out[b][o].Values[s] += partial
				}
			}
		}
	}
	return out, nil
}

// Compress wraps bare per-centroid values, shaped (batch, InputFields,
// NumPositions), into a compressed representation suitable for Transpose.
// It is the entry point for decoders whose latent comes from a dense network.
func (f *Filter) Compress(values [][][]float64) (mesh.Cloud, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrShapeMismatch)
	}
	out := f.newCompressed(len(values), f.inFields)
	for b, elem := range values {
		if len(elem) != f.inFields {
			return nil, fmt.Errorf("%w: batch %d has %d fields, want %d", ErrShapeMismatch, b, len(elem), f.inFields)
		}
		for i, v := range elem {
			if len(v) != len(f.positions) {
				return nil, fmt.Errorf("%w: batch %d field %d has %d values, want %d",
					ErrShapeMismatch, b, i, len(v), len(f.positions))
			}
			copy(out[b][i].Values, v)
		}
	}
	return out, nil
}

// newCompressed allocates a zero-valued representation over the centroids.
func (f *Filter) newCompressed(batch, fields int) mesh.Cloud {
	d := f.Dim()
	flat := make([]float64, 0, len(f.positions)*d)
	for _, c := range f.positions {
		flat = append(flat, c...)
	}
	out := make(mesh.Cloud, batch)
	for b := range out {
		out[b] = make([]mesh.Points, fields)
		for o := range out[b] {
			out[b][o] = mesh.Points{
				Dim:    d,
				Coords: append([]float64(nil), flat...),
				Values: make([]float64, len(f.positions)),
			}
		}
	}
	return out
}

func gather(dst, src []float64, idx []int) []float64 {
	dst = dst[:0]
	for _, j := range idx {
		dst = append(dst, src[j])
	}
	return dst
}
