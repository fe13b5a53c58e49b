package raster

import "math"

// Plotter receives anti-aliased pixel coverage from DrawLine.
type Plotter interface {
	// Plot adds coverage weight at (x, y). Implementations discard
	// pixels outside their extent.
	Plot(x, y int, weight float64)

	// Size reports the plotter extent; DrawLine clips its sweep to it.
	Size() (width, height int)
}

// DrawLine draws an anti-aliased line of the given width from (x0, y0)
// to (x1, y1). It generalizes Wu's algorithm to wide strokes:
//
//  1. The sweep runs along the dominant axis (x and y swap for steep lines),
//     left to right, one step per integer coordinate between the rounded
//     endpoints, both inclusive.
//  2. At each step the primary pixel floor(intery) receives 1-frac(intery).
//  3. The remaining budget width+frac(intery)-1, minus the primary weight,
//     is spent on further pixels along the minor axis, one unit each,
//     until it is exhausted. Each of these weights is capped at 1.
//
// Lines with a NaN or infinite coordinate are not drawn.
func DrawLine(p Plotter, x0, y0, x1, y1, width float64) {
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) || !finite(width) {
		return
	}

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	gradient := 1.0
	if dx != 0 {
		gradient = dy / dx
	}

	w, h := p.Size()
	majorExtent, minorExtent := w, h
	if steep {
		majorExtent, minorExtent = h, w
	}
	if majorExtent <= 0 || minorExtent <= 0 {
		return
	}

	xStart := round(x0)
	xEnd := round(x1)
	intery := y0 + gradient*(xStart-x0)

	// Clip the sweep to the buffer; intery is advanced past skipped columns.
	if xStart < 0 {
		intery += gradient * -xStart
		xStart = 0
	}
	if last := float64(majorExtent - 1); xEnd > last {
		xEnd = last
	}
	if xStart > xEnd {
		return
	}

	plot := p.Plot
	if steep {
		plot = func(a, b int, weight float64) { p.Plot(b, a, weight) }
	}

	for x := int(xStart); x <= int(xEnd); x++ {
		span(plot, x, intery, width, minorExtent)
		intery += gradient
	}
}

// span emits the cross-section of a stroke at one sweep position.
func span(plot func(a, b int, weight float64), x int, intery, width float64, minorExtent int) {
	base := math.Floor(intery)
	if base > float64(minorExtent) || base < -width-1 {
		return
	}
	frac := intery - base
	y := int(base)

	primary := 1 - frac
	plot(x, y, primary)

	budget := width + frac - 1 - primary
	for offset := 1; budget > 0; offset++ {
		plot(x, y+offset, math.Min(budget, 1))
		budget--
	}
}

// round rounds half up, matching canvas pixel snapping.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
