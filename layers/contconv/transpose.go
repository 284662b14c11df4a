package contconv

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-operator/mesh"
)

// Transpose spreads a compressed representation onto a target mesh.
//
// compressed is shaped (batch, InputFields, positions, Dim); its coordinates
// are the window centroids and must be identical across the fields of a
// batch element. target is shaped (batch, OutputFields or 1, m, Dim); its
// values, if any, are ignored, and a single target channel is shared by all
// output fields. The result is shaped (batch, OutputFields, m, Dim) with the
// target coordinates and
//
//	out[b][o][p] = Σ_i Σ_{s : p ∈ window(s)} z[b][i][s] · K_{o,i}(x_p − c_s)
//
// Target points outside every window yield 0. The target mesh is unrelated
// to the mesh that produced compressed; only the window geometry links them.
func (f *Filter) Transpose(compressed, target mesh.Cloud) (mesh.Cloud, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	d := f.Dim()
	if err := compressed.Validate(f.inFields, d); err != nil {
		return nil, fmt.Errorf("%w: compressed: %w", ErrShapeMismatch, err)
	}
	if err := target.Validate(0, d); err != nil {
		return nil, fmt.Errorf("%w: target: %w", ErrShapeMismatch, err)
	}
	if len(target) != len(compressed) {
		return nil, fmt.Errorf("%w: target batch %d, compressed batch %d", ErrShapeMismatch, len(target), len(compressed))
	}

	centroids := make([][][]float64, len(compressed))
	for b, elem := range compressed {
		if elem[0].Values == nil {
			return nil, fmt.Errorf("%w: batch %d compressed field 0 has no values", ErrShapeMismatch, b)
		}
		for i := 1; i < len(elem); i++ {
			if elem[i].Values == nil {
				return nil, fmt.Errorf("%w: batch %d compressed field %d has no values", ErrShapeMismatch, b, i)
			}
			if !slices.Equal(elem[i].Coords, elem[0].Coords) {
				return nil, fmt.Errorf("%w: batch %d compressed fields have different centroids", ErrShapeMismatch, b)
			}
		}
		centroids[b] = make([][]float64, elem[0].Len())
		for s := range centroids[b] {
			centroids[b][s] = elem[0].Coord(s)
		}
		if b > 0 && len(centroids[b]) != len(centroids[0]) {
			return nil, fmt.Errorf("%w: batch %d has %d centroids, batch 0 has %d",
				ErrShapeMismatch, b, len(centroids[b]), len(centroids[0]))
		}
		if ch := len(target[b]); ch != f.outFields && ch != 1 {
			return nil, fmt.Errorf("%w: batch %d target has %d channels, want %d or 1", ErrShapeMismatch, b, ch, f.outFields)
		}
	}

	sets, err := f.selections(&f.transposeCache, target, len(centroids[0]), func(b int) [][]float64 {
		return centroids[b]
	})
	if err != nil {
		return nil, err
	}

	out := make(mesh.Cloud, len(target))
	var contrib []float64
	for b, elem := range target {
		out[b] = make([]mesh.Points, f.outFields)
		hits := make([][]int, f.outFields)
		for o := range out[b] {
			tc := targetChannel(elem, o)
			out[b][o] = mesh.Points{
				Dim:    d,
				Coords: append([]float64(nil), elem[tc].Coords...),
				Values: make([]float64, elem[tc].Len()),
			}
			hits[o] = make([]int, elem[tc].Len())
		}

		for s, centroid := range centroids[b] {
			for o := 0; o < f.outFields; o++ {
				tc := targetChannel(elem, o)
				idx := sets[b][tc][s]
				if len(idx) == 0 {
					continue
				}
				x := offsets(elem[tc], idx, centroid)
				acc := out[b][o].Values
				for i := 0; i < f.inFields; i++ {
					r, err := respond(f.Kernel(o, i), x)
					if err != nil {
						return nil, fmt.Errorf("contconv: kernel (%d, %d): %w", o, i, err)
					}
					contrib = slices.Grow(contrib[:0], len(r))[:len(r)]
					vecmath.ScaleBlock(contrib, r, compressed[b][i].Values[s])
					for k, j := range idx {
						acc[j] += contrib[k]
					}
				}
				for _, j := range idx {
					hits[o][j]++
				}
			}
		}

		if f.cfg.reduction == ReduceMean {
			for o := range out[b] {
				for j, n := range hits[o] {
					if n > 0 {
						out[b][o].Values[j] /= float64(n)
					}
				}
			}
		}
	}
	return out, nil
}

// targetChannel maps output field o to its target channel; a single target
// channel is shared by all output fields.
func targetChannel(elem []mesh.Points, o int) int {
	if len(elem) == 1 {
		return 0
	}
	return o
}
