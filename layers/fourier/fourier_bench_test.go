package fourier

import (
	"fmt"
	"testing"
)

func BenchmarkBlock2D(b *testing.B) {
	sizes := []struct {
		n     int
		modes [2]int
	}{
		{16, [2]int{4, 4}},
		{32, [2]int{8, 8}},
		{64, [2]int{12, 12}},
	}

	for _, size := range sizes {
		block, err := NewBlock2D(4, 4, size.modes)
		if err != nil {
			b.Fatal(err)
		}
		x := randomTensor(b, 1, 2, 4, size.n, size.n)

		b.Run(fmt.Sprintf("n=%d_modes=%d", size.n, size.modes[0]), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = block.Forward(x)
			}
		})
	}
}

func BenchmarkSpectralConv1D(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		s, err := NewSpectralConv1D(4, 4, 16)
		if err != nil {
			b.Fatal(err)
		}
		x := randomTensor(b, 1, 8, 4, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = s.Forward(x)
			}
		})
	}
}
