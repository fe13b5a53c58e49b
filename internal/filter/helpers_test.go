package filter

// Test helper functions shared across filter tests.

// newBuffer returns a width x height buffer filled with v.
func newBuffer(width, height int, v float64) []float64 {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = v
	}
	return data
}

// impulse returns a zero buffer with a single value at (x, y).
func impulse(width, height, x, y int, v float64) []float64 {
	data := make([]float64, width*height)
	data[y*width+x] = v
	return data
}

// sum returns the total of all cells.
func sum(data []float64) float64 {
	s := 0.0
	for _, v := range data {
		s += v
	}
	return s
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
