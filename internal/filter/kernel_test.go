package filter

import (
	"math"
	"testing"
)

func TestBoxesForGauss(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
		n     int
		want  []int
	}{
		{"sigma 2", 2, 3, []int{3, 3, 5}},
		{"sigma 1", 1, 3, []int{1, 1, 3}},
		{"sigma 5", 5, 3, []int{9, 9, 11}},
		{"no boxes", 2, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxesForGauss(tt.sigma, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("BoxesForGauss(%v, %d) = %v, want %v", tt.sigma, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("BoxesForGauss(%v, %d) = %v, want %v", tt.sigma, tt.n, got, tt.want)
					break
				}
			}
		})
	}
}

func TestBoxesForGaussShape(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 1.5, 2, 3.3, 7, 12.25, 40} {
		widths := BoxesForGauss(sigma, 3)
		wl := widths[0]
		if wl%2 == 0 {
			t.Errorf("sigma %v: low width %d is even", sigma, wl)
		}
		for i := 1; i < len(widths); i++ {
			if widths[i] != wl && widths[i] != wl+2 {
				t.Errorf("sigma %v: width %d is neither %d nor %d", sigma, widths[i], wl, wl+2)
			}
			if widths[i] < widths[i-1] {
				t.Errorf("sigma %v: low widths must come first: %v", sigma, widths)
			}
		}
		if got := ActualSigma(widths); math.Abs(got-sigma) > 1 {
			t.Errorf("sigma %v: realized sigma %v too far off (%v)", sigma, got, widths)
		}
	}
}

func TestBoxRadius(t *testing.T) {
	tests := []struct{ width, want int }{
		{1, 0}, {3, 1}, {5, 2}, {11, 5}, {0, 0},
	}
	for _, tt := range tests {
		if got := BoxRadius(tt.width); got != tt.want {
			t.Errorf("BoxRadius(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestActualSigma(t *testing.T) {
	// Variance of a width-w box is (w^2-1)/12.
	got := ActualSigma([]int{3, 3, 5})
	want := math.Sqrt(8.0/12 + 8.0/12 + 24.0/12)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ActualSigma = %v, want %v", got, want)
	}
}
