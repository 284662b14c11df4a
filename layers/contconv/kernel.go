package contconv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-operator/mesh"
	"github.com/cwbudde/algo-operator/nn"
)

// offsets builds the n x d batch of selected point coordinates relative to
// centroid. idx must not be empty.
func offsets(p mesh.Points, idx []int, centroid []float64) *mat.Dense {
	d := len(centroid)
	data := make([]float64, len(idx)*d)
	for r, j := range idx {
		x := p.Coord(j)
		row := data[r*d : (r+1)*d]
		for i := range row {
			row[i] = x[i] - centroid[i]
		}
	}
	return mat.NewDense(len(idx), d, data)
}

// respond evaluates kernel k on the offset batch x and returns one response
// per row.
func respond(k nn.Model, x *mat.Dense) ([]float64, error) {
	n, _ := x.Dims()
	y, err := k.Forward(x)
	if err != nil {
		return nil, err
	}
	if y == nil {
		return nil, fmt.Errorf("%w: kernel returned nil output", ErrConfiguration)
	}
	if r, c := y.Dims(); r != n || c != 1 {
		return nil, fmt.Errorf("%w: kernel output is %dx%d, want %dx1", ErrConfiguration, r, c, n)
	}
	return mat.Col(nil, 0, y), nil
}
