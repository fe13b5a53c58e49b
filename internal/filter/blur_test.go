package filter

import (
	"testing"
)

func TestBoxBlurZeroRadiusIsIdentity(t *testing.T) {
	data := impulse(5, 5, 2, 2, 200)
	BoxBlur(data, 5, 5, 0)
	if data[12] != 200 || sum(data) != 200 {
		t.Errorf("radius 0 changed the buffer: %v", data)
	}
}

func TestGaussBlurZeroSigmaIsIdentity(t *testing.T) {
	data := impulse(7, 7, 3, 3, 255)
	GaussBlur(data, 7, 7, 0)
	if data[3*7+3] != 255 || sum(data) != 255 {
		t.Errorf("sigma 0 changed the buffer")
	}
}

func TestBoxBlurUniform(t *testing.T) {
	// Clamp-to-edge keeps a uniform buffer uniform, including borders.
	data := newBuffer(20, 20, 42)
	BoxBlur(data, 20, 20, 5)
	for i, v := range data {
		if v != 42 {
			t.Fatalf("cell %d = %v, want 42 (no edge darkening)", i, v)
		}
	}
}

func TestGaussBlurUniform(t *testing.T) {
	data := newBuffer(9, 6, 17)
	GaussBlur(data, 9, 6, 2)
	for i, v := range data {
		if v != 17 {
			t.Fatalf("cell %d = %v, want 17", i, v)
		}
	}
}

func TestBoxBlurEdgeClamp(t *testing.T) {
	// One row: [10 0 0 0 0], r=1, window 3.
	// x=0 sees [10 10 0] -> 20/3 -> 7; x=1 sees [10 0 0] -> 3.
	data := []float64{10, 0, 0, 0, 0}
	BoxBlur(data, 5, 1, 1)
	want := []float64{7, 3, 0, 0, 0}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data = %v, want %v", data, want)
			break
		}
	}
}

func TestBoxBlurRadiusLargerThanImage(t *testing.T) {
	data := []float64{0, 30, 0}
	BoxBlur(data, 3, 1, 4)
	// Window of 9 over clamped samples [0 0 0 0 | 0 30 0 | 0 0 ...]: 30/9.
	for i, v := range data {
		if v != 3 {
			t.Errorf("data[%d] = %v, want 3", i, v)
		}
	}
}

func TestBoxBlurMassConservation(t *testing.T) {
	const w, h = 40, 30
	data := make([]float64, w*h)
	for y := 10; y < 20; y++ {
		for x := 12; x < 28; x++ {
			data[y*w+x] = float64((x*7 + y*13) % 256)
		}
	}
	before := sum(data)
	BoxBlur(data, w, h, 3)
	after := sum(data)

	if absf(after-before) > float64(w*h) {
		t.Errorf("mass drifted by %v (> %d)", after-before, w*h)
	}
}

func TestGaussBlurImpulseResponse(t *testing.T) {
	const n = 31
	const c = n / 2
	data := impulse(n, n, c, c, 255)
	GaussBlur(data, n, n, 2)

	peak := data[c*n+c]
	if peak <= 0 || peak >= 255 {
		t.Fatalf("peak = %v, want spread below 255", peak)
	}

	for d := 1; d <= c; d++ {
		// Along the row and the column through the center, in both directions.
		pairs := [][2]float64{
			{data[c*n+c+d-1], data[c*n+c+d]},
			{data[c*n+c-d+1], data[c*n+c-d]},
			{data[(c+d-1)*n+c], data[(c+d)*n+c]},
			{data[(c-d+1)*n+c], data[(c-d)*n+c]},
		}
		for _, p := range pairs {
			if p[1] > p[0] {
				t.Errorf("distance %d: value increased from %v to %v", d, p[0], p[1])
			}
		}
	}

	for i, v := range data {
		if v > peak {
			t.Errorf("cell %d = %v exceeds peak %v", i, v, peak)
		}
	}

	// Symmetric about the center.
	for d := 1; d <= c; d++ {
		if data[c*n+c+d] != data[c*n+c-d] || data[(c+d)*n+c] != data[(c-d)*n+c] {
			t.Errorf("distance %d: response not symmetric", d)
		}
	}
}

func TestGaussBlurSpreads(t *testing.T) {
	data := impulse(21, 21, 10, 10, 255)
	GaussBlur(data, 21, 21, 2)
	if data[10*21+12] == 0 {
		t.Error("blur should reach two pixels from the center")
	}
	if data[0] != 0 {
		t.Errorf("corner = %v, want 0", data[0])
	}
}

func TestGaussBlurShortBufferIgnored(t *testing.T) {
	data := []float64{1, 2, 3}
	GaussBlur(data, 4, 4, 2)
	if data[0] != 1 || data[1] != 2 || data[2] != 3 {
		t.Errorf("short buffer modified: %v", data)
	}
}

func BenchmarkGaussBlur(b *testing.B) {
	const w, h = 1024, 768
	data := make([]float64, w*h)
	for i := range data {
		data[i] = float64(i % 256)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GaussBlur(data, w, h, 2)
	}
}
