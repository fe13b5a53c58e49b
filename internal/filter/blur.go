package filter

import (
	"math"
	"sync"
)

// Passes is the number of box blurs used to approximate a Gaussian.
const Passes = 3

// GaussBlur blurs the width x height row-major buffer data in place,
// approximating a Gaussian of standard deviation sigma with Passes box
// blurs. A non-positive sigma or empty buffer leaves data unchanged.
//
// Each 1-D sweep rounds its output to an integer, so values stay on the
// integer grid after the first pass.
func GaussBlur(data []float64, width, height int, sigma float64) {
	if sigma <= 0 || width <= 0 || height <= 0 || len(data) < width*height {
		return
	}

	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	for _, w := range BoxesForGauss(sigma, Passes) {
		boxBlur(data, temp, width, height, BoxRadius(w))
	}
}

// BoxBlur applies one box blur of radius r (window 2r+1) to data in
// place: a horizontal pass followed by a vertical pass. r = 0 is the
// identity.
func BoxBlur(data []float64, width, height, r int) {
	if r <= 0 || width <= 0 || height <= 0 || len(data) < width*height {
		return
	}

	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	boxBlur(data, temp, width, height, r)
}

// boxBlur runs the horizontal pass data -> temp and the vertical pass
// temp -> data.
func boxBlur(data, temp []float64, width, height, r int) {
	if r <= 0 {
		return
	}

	// Pass 1: rows
	for y := 0; y < height; y++ {
		blurLine(data, temp, y*width, 1, width, r)
	}

	// Pass 2: columns
	for x := 0; x < width; x++ {
		blurLine(temp, data, x, width, height, r)
	}
}

// blurLine box-filters n samples starting at offset with the given
// stride, reading src and writing dst. It keeps a running sum over the
// 2r+1 window; indexes outside [0, n) clamp to the first or last sample.
func blurLine(src, dst []float64, offset, stride, n, r int) {
	inv := 1 / float64(r+r+1)
	at := func(i int) float64 {
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		return src[offset+i*stride]
	}

	sum := 0.0
	for i := -r; i <= r; i++ {
		sum += at(i)
	}

	for i := 0; i < n; i++ {
		dst[offset+i*stride] = math.Round(sum * inv)
		sum += at(i+r+1) - at(i-r)
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float64
}

// Temporary buffer pool for blur passes.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float64, 1024*1024)}
	},
}

// getTempBuffer retrieves a temporary buffer of at least size elements.
// Contents are unspecified; every pass writes each cell before reading it.
func getTempBuffer(size int) []float64 {
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		// Need larger buffer - return old one and allocate new
		tempBufferPool.Put(wrapper)
		return make([]float64, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float64) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
