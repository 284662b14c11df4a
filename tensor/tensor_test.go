package tensor

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	d, err := New(2, 3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 24 || d.Rank() != 3 || d.Dim(2) != 4 {
		t.Fatalf("len=%d rank=%d dim2=%d", d.Len(), d.Rank(), d.Dim(2))
	}
	for _, v := range d.Data() {
		if v != 0 {
			t.Fatal("new tensor is not zeroed")
		}
	}

	tests := []struct {
		name  string
		shape []int
	}{
		{"empty", nil},
		{"zero axis", []int{2, 0}},
		{"negative axis", []int{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.shape...); !errors.Is(err, ErrShape) {
				t.Fatalf("expected ErrShape, got %v", err)
			}
		})
	}
}

func TestFromData(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}
	d, err := FromData(data, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.At(1, 0); got != 3 {
		t.Fatalf("At(1, 0) = %v, want 3", got)
	}
	d.Set(9, 0, 2)
	if data[2] != 9 {
		t.Fatal("FromData copied its input")
	}
	if _, err := FromData(data, 4, 2); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestOffsetRowMajor(t *testing.T) {
	d, _ := New(2, 3, 4)
	want := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				if got := d.Offset(i, j, k); got != want {
					t.Fatalf("Offset(%d, %d, %d) = %d, want %d", i, j, k, got, want)
				}
				want++
			}
		}
	}
}

func TestOffsetPanics(t *testing.T) {
	d, _ := New(2, 2)
	for _, idx := range [][]int{{2, 0}, {0, -1}, {0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Offset(%v) did not panic", idx)
				}
			}()
			d.Offset(idx...)
		}()
	}
}

func TestSlab(t *testing.T) {
	data := make([]float64, 2*3*4)
	for i := range data {
		data[i] = float64(i)
	}
	d, _ := FromData(data, 2, 3, 4)

	s := d.Slab(1, 2)
	if len(s) != 4 || s[0] != 20 {
		t.Fatalf("Slab(1, 2) = %v", s)
	}
	s = d.Slab(1)
	if len(s) != 12 || s[0] != 12 {
		t.Fatalf("Slab(1) has len %d, first %v", len(s), s[0])
	}
	if len(d.Slab()) != 24 {
		t.Fatal("Slab() must cover the whole tensor")
	}
	s[0] = -1
	if d.At(1, 0, 0) != -1 {
		t.Fatal("Slab must share storage")
	}
}
