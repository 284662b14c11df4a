package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-operator/mesh"
)

// SinProduct evaluates prod_i sin(pi*x[i]).
func SinProduct(x []float64) float64 {
	v := 1.0
	for _, xi := range x {
		v *= math.Sin(math.Pi * xi)
	}
	return v
}

// RandomCloud returns a cloud of uniform points in the unit cube with
// uniform values in [-1, 1). The seed makes it reproducible.
func RandomCloud(seed int64, batch, channels, n, dim int) mesh.Cloud {
	rng := rand.New(rand.NewSource(seed))
	hi := make([]float64, dim)
	for i := range hi {
		hi[i] = 1
	}
	c := make(mesh.Cloud, batch)
	for b := range c {
		c[b] = make([]mesh.Points, channels)
		for ch := range c[b] {
			p := mesh.Uniform(rng, n, hi)
			for i := range p.Values {
				p.Values[i] = rng.Float64()*2 - 1
			}
			c[b][ch] = p
		}
	}
	return c
}

// GridCloud returns a cloud whose every channel is the regular grid with n
// points per axis covering [0, 1)^dim at cell centres, sampled from f.
func GridCloud(batch, channels, n, dim int, f func([]float64) float64) mesh.Cloud {
	shape := make([]int, dim)
	origin := make([]float64, dim)
	spacing := make([]float64, dim)
	for i := range shape {
		shape[i] = n
		spacing[i] = 1 / float64(n)
		origin[i] = spacing[i] / 2
	}
	c := make(mesh.Cloud, batch)
	for b := range c {
		c[b] = make([]mesh.Points, channels)
		for ch := range c[b] {
			p := mesh.Grid(shape, origin, spacing)
			p.Sample(f)
			c[b][ch] = p
		}
	}
	return c
}
