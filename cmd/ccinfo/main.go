// Command ccinfo prints the geometry of continuous convolution presets and
// runs a forward pass on synthetic data to check output shapes.
//
// Usage:
//
//	ccinfo [flags] [preset-name ...]
//
// Without arguments it prints info for all known presets.
//
// Examples:
//
//	ccinfo mnist
//	ccinfo -batch 8 -optimize tutorial autoencoder
//	ccinfo -positions 5 autoencoder
//	ccinfo -upsample -points 500 -target 1500
//	ccinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-operator/layers/contconv"
	"github.com/cwbudde/algo-operator/layers/stride"
	"github.com/cwbudde/algo-operator/mesh"
	"github.com/cwbudde/algo-operator/nn"
)

type preset struct {
	name      string
	in        int
	out       int
	filterDim []float64
	stride    map[string][]float64
	input     func(rng *rand.Rand, batch, fields int) mesh.Cloud
}

var registry = []preset{
	{
		name:      "tutorial",
		in:        2,
		out:       1,
		filterDim: []float64{0.1, 0.1},
		stride: map[string][]float64{
			"domain":    {1, 1},
			"start":     {0, 0},
			"jump":      {0.08, 0.08},
			"direction": {1, 1},
		},
		input: uniformInput(200),
	},
	{
		name:      "mnist",
		in:        1,
		out:       4,
		filterDim: []float64{4, 4},
		stride: map[string][]float64{
			"domain":    {27, 27},
			"start":     {0, 0},
			"jumps":     {4, 4},
			"direction": {1, 1},
		},
		input: imageInput(28, 28),
	},
	{
		name:      "autoencoder",
		in:        1,
		out:       2,
		filterDim: []float64{0.15, 0.15},
		stride: map[string][]float64{
			"domain":    {1, 1},
			"start":     {0, 0},
			"jumps":     {0.05, 0.05},
			"direction": {1, 1},
		},
		input: diskInput(500),
	},
}

func main() {
	batch := flag.Int("batch", 1, "batch size of the synthetic input")
	seed := flag.Int64("seed", 1, "seed for synthetic data and kernel initialization")
	optimize := flag.Bool("optimize", false, "cache point selections (static mesh)")
	positions := flag.Int("positions", 0, "print the first n centroids of each preset")
	all := flag.Bool("all", false, "show all presets")
	list := flag.Bool("list", false, "list available preset names")
	upsample := flag.Bool("upsample", false, "run the disk upsampling demo instead of the preset table")
	points := flag.Int("points", 500, "encoding mesh size for -upsample")
	target := flag.Int("target", 1500, "decoding mesh size for -upsample")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccinfo [flags] [preset-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints stride geometry and output shapes of continuous convolution presets.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, prints info for all presets.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ccinfo mnist\n")
		fmt.Fprintf(os.Stderr, "  ccinfo -batch 8 -optimize tutorial autoencoder\n")
		fmt.Fprintf(os.Stderr, "  ccinfo -upsample -points 500 -target 1500\n")
		fmt.Fprintf(os.Stderr, "  ccinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	if *upsample {
		if err := runUpsample(*points, *target, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, p := range registry {
			names = append(names, p.name)
		}
	}

	presets := resolvePresets(names)
	if len(presets) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching presets\n")
		os.Exit(1)
	}
	if *batch <= 0 {
		fmt.Fprintf(os.Stderr, "warning: batch must be > 0, using 1\n")
		*batch = 1
	}

	printPresets(presets, *batch, *seed, *optimize)
	if *positions > 0 {
		printPositions(presets, *positions)
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolvePresets(names []string) []preset {
	byName := make(map[string]preset, len(registry))
	for _, p := range registry {
		byName[p.name] = p
	}

	var result []preset
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		p, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown preset %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, p)
	}
	return result
}

func (p preset) filter(seed int64, opts ...contconv.Option) (*contconv.Filter, error) {
	s, err := stride.FromMap(p.stride)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	opts = append([]contconv.Option{contconv.WithSeed(seed)}, opts...)
	f, err := contconv.New(p.in, p.out, p.filterDim, s, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	return f, nil
}

func printPresets(presets []preset, batch int, seed int64, optimize bool) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Preset\tFields\tFilter\tStride Shape\tPositions\tLatent\tInput Points\tOutput\tState\tTime\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t------\t------------\t---------\t------\t------------\t------\t-----\t----\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	rng := rand.New(rand.NewSource(seed))
	for _, p := range presets {
		f, err := p.filter(seed, contconv.WithOptimize(optimize))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		in := p.input(rng, batch, p.in)
		start := time.Now()
		z, err := f.Forward(in)
		elapsed := time.Since(start)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: forward: %v\n", p.name, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d -> %d\t%v\t%v\t%d\t%d\t%d\t(%d, %d, %d)\t%s\t%s\n",
			p.name,
			f.InputFields(),
			f.OutputFields(),
			f.FilterDim(),
			f.Stride().Shape(),
			f.NumPositions(),
			f.OutputFields()*f.NumPositions(),
			in[0][0].Len(),
			z.Batch(),
			z.Channels(),
			z[0][0].Len(),
			f.State(),
			elapsed.Round(time.Microsecond),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printPositions(presets []preset, n int) {
	for _, p := range presets {
		s, err := stride.FromMap(p.stride)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", p.name, err)
			continue
		}
		fmt.Printf("\n%s:\n", p.name)
		for k, pos := range s.All() {
			if k >= n {
				break
			}
			fmt.Printf("  %4d  %v\n", k, pos)
		}
	}
}

// runUpsample encodes sin(pi x) sin(pi y) sampled on a disk of n points and
// decodes it onto an independent disk of m points.
func runUpsample(n, m int, seed int64) error {
	if n <= 0 || m <= 0 {
		return fmt.Errorf("mesh sizes must be > 0: %d, %d", n, m)
	}
	presets := resolvePresets([]string{"autoencoder"})
	if len(presets) == 0 {
		return fmt.Errorf("autoencoder preset missing")
	}
	f, err := presets[0].filter(seed,
		contconv.WithModel(nn.Constant(1)),
		contconv.WithReduction(contconv.ReduceMean),
		contconv.WithOptimize(true),
	)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	coarse := mesh.Disk(rng, n, 0.5, 0.5, 0.5)
	coarse.Sample(sinProduct)
	fine := mesh.Disk(rng, m, 0.5, 0.5, 0.5)

	z, err := f.Forward(mesh.Cloud{{coarse}})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	y, err := f.Transpose(z, mesh.Cloud{{fine.WithoutValues()}})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fine.Sample(sinProduct)
	got := y[0][0].Values
	rel := floats.Distance(got, fine.Values, 2) / floats.Norm(fine.Values, 2)
	corr := stat.Correlation(got, fine.Values, nil)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Encode Points\tPositions\tDecode Points\tRel L2 Error\tCorrelation\n")
	_, _ = fmt.Fprintf(tw, "-------------\t---------\t-------------\t------------\t-----------\n")
	_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%.4f\t%.4f\n", n, f.NumPositions(), m, rel, corr)
	return tw.Flush()
}

func sinProduct(x []float64) float64 {
	return math.Sin(math.Pi*x[0]) * math.Sin(math.Pi*x[1])
}

func uniformInput(n int) func(*rand.Rand, int, int) mesh.Cloud {
	return func(rng *rand.Rand, batch, fields int) mesh.Cloud {
		c := make(mesh.Cloud, batch)
		for b := range c {
			c[b] = make([]mesh.Points, fields)
			for i := range c[b] {
				p := mesh.Uniform(rng, n, []float64{1, 1})
				p.Sample(sinProduct)
				c[b][i] = p
			}
		}
		return c
	}
}

func imageInput(rows, cols int) func(*rand.Rand, int, int) mesh.Cloud {
	return func(rng *rand.Rand, batch, fields int) mesh.Cloud {
		c := make(mesh.Cloud, batch)
		for b := range c {
			c[b] = make([]mesh.Points, fields)
			for i := range c[b] {
				pixels := make([]float64, rows*cols)
				for k := range pixels {
					pixels[k] = rng.Float64()
				}
				p, _ := mesh.FromGrid(pixels, []int{rows, cols})
				c[b][i] = p
			}
		}
		return c
	}
}

func diskInput(n int) func(*rand.Rand, int, int) mesh.Cloud {
	return func(rng *rand.Rand, batch, fields int) mesh.Cloud {
		c := make(mesh.Cloud, batch)
		for b := range c {
			c[b] = make([]mesh.Points, fields)
			for i := range c[b] {
				p := mesh.Disk(rng, n, 0.5, 0.5, 0.5)
				p.Sample(sinProduct)
				c[b][i] = p
			}
		}
		return c
	}
}
