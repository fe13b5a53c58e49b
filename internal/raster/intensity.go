// Package raster draws track strokes into a single-channel intensity buffer.
//
// Strokes are accumulated, never overwritten: every plotted pixel adds
// weight*alpha to its cell, saturating at MaxIntensity. Overlapping
// tracks therefore brighten toward saturation where they coincide.
package raster

// MaxIntensity is the saturation value of an intensity cell.
const MaxIntensity = 255.0

// Intensity is a width x height grid of fractional accumulators in
// row-major order.
//
// An Intensity is owned by a single render and is not safe for
// concurrent use.
type Intensity struct {
	width  int
	height int
	data   []float64
}

// NewIntensity returns a zero-filled buffer.
// Non-positive dimensions yield an empty buffer.
func NewIntensity(width, height int) *Intensity {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Intensity{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
}

// Width returns the buffer width in pixels.
func (b *Intensity) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Intensity) Height() int { return b.height }

// Data returns the underlying cells, row-major.
func (b *Intensity) Data() []float64 { return b.data }

// At returns the value at (x, y), or 0 outside the buffer.
func (b *Intensity) At(x, y int) float64 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.data[y*b.width+x]
}

// Add accumulates v into (x, y), clamped to MaxIntensity.
// Writes outside the buffer and non-positive or NaN values are discarded.
func (b *Intensity) Add(x, y int, v float64) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	if !(v > 0) {
		return
	}
	i := y*b.width + x
	sum := b.data[i] + v
	if sum > MaxIntensity {
		sum = MaxIntensity
	}
	b.data[i] = sum
}

// Max returns the largest cell value.
func (b *Intensity) Max() float64 {
	m := 0.0
	for _, v := range b.data {
		if v > m {
			m = v
		}
	}
	return m
}

// Sum returns the total of all cells.
func (b *Intensity) Sum() float64 {
	s := 0.0
	for _, v := range b.data {
		s += v
	}
	return s
}

// NonZero returns the number of cells holding a positive value.
func (b *Intensity) NonZero() int {
	n := 0
	for _, v := range b.data {
		if v > 0 {
			n++
		}
	}
	return n
}
