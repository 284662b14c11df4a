package contconv

import (
	"fmt"

	"github.com/cwbudde/algo-operator/mesh"
)

// Select appends to dst[:0] the indices of the points lying in the window of
// extent filterDim centred at centroid. A point x is inside when
// centroid[i]-filterDim[i]/2 <= x[i] < centroid[i]+filterDim[i]/2 on every
// axis. An empty window yields a zero-length result, not an error.
func Select(p mesh.Points, centroid, filterDim []float64, dst []int) []int {
	dst = dst[:0]
	n := p.Len()
	for j := 0; j < n; j++ {
		if inWindow(p.Coord(j), centroid, filterDim) {
			dst = append(dst, j)
		}
	}
	return dst
}

func inWindow(x, centroid, filterDim []float64) bool {
	for i, c := range centroid {
		half := filterDim[i] / 2
		if x[i] < c-half || x[i] >= c+half {
			return false
		}
	}
	return true
}

// indexCache holds point selections of one mesh, [batch][channel][position].
type indexCache struct {
	counts    [][]int
	positions int
	sets      [][][][]int
}

func (c *indexCache) matches(counts [][]int, positions int) bool {
	if c.positions != positions || len(c.counts) != len(counts) {
		return false
	}
	for b := range counts {
		if len(c.counts[b]) != len(counts[b]) {
			return false
		}
		for ch := range counts[b] {
			if c.counts[b][ch] != counts[b][ch] {
				return false
			}
		}
	}
	return true
}

// selectAll computes the selection of every channel of every batch element
// for every centroid. centroids(b) returns the centroids used for batch b.
func (f *Filter) selectAll(cloud mesh.Cloud, centroids func(b int) [][]float64) [][][][]int {
	sets := make([][][][]int, len(cloud))
	for b, elem := range cloud {
		cs := centroids(b)
		sets[b] = make([][][]int, len(elem))
		for ch, p := range elem {
			sets[b][ch] = make([][]int, len(cs))
			for s, c := range cs {
				sets[b][ch][s] = Select(p, c, f.filterDim, nil)
			}
		}
	}
	return sets
}

// selections returns the selections for cloud, going through cache when
// optimize is enabled. *cache is populated on first use.
func (f *Filter) selections(cache **indexCache, cloud mesh.Cloud, positions int, centroids func(b int) [][]float64) ([][][][]int, error) {
	if !f.cfg.optimize {
		return f.selectAll(cloud, centroids), nil
	}

	counts := cloud.Counts()
	if *cache != nil {
		if !(*cache).matches(counts, positions) {
			return nil, fmt.Errorf("%w: call InvalidateCache after changing the mesh", ErrStaleCache)
		}
		return (*cache).sets, nil
	}

	sets := f.selectAll(cloud, centroids)
	*cache = &indexCache{counts: counts, positions: positions, sets: sets}
	f.state = StateCached
	return sets, nil
}
