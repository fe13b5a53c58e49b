package filter

import "math"

// BoxesForGauss returns n box widths whose successive application
// approximates a Gaussian blur of standard deviation sigma.
//
// The ideal width sqrt(12*sigma^2/n + 1) is rounded down to an odd wl;
// the first m boxes use wl and the rest wl+2, with m chosen so the
// combined variance is closest to sigma^2.
//
// For sigma = 2, n = 3 it returns [3, 3, 5].
func BoxesForGauss(sigma float64, n int) []int {
	if n <= 0 {
		return nil
	}
	nf := float64(n)

	wIdeal := math.Sqrt(12*sigma*sigma/nf + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	wlf := float64(wl)
	mIdeal := (12*sigma*sigma - nf*wlf*wlf - 4*nf*wlf - 3*nf) / (-4*wlf - 4)
	m := int(math.Round(mIdeal))
	if m < 0 {
		m = 0
	}
	if m > n {
		m = n
	}

	sizes := make([]int, n)
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// BoxRadius converts an odd box width to the radius r of a 2r+1 window.
func BoxRadius(width int) int {
	if width <= 1 {
		return 0
	}
	return (width - 1) / 2
}

// ActualSigma returns the standard deviation realized by the given box widths.
func ActualSigma(widths []int) float64 {
	v := 0.0
	for _, w := range widths {
		wf := float64(w)
		v += (wf*wf - 1) / 12
	}
	return math.Sqrt(v)
}
