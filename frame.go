package trackheat

import (
	"fmt"
	"math"

	"github.com/gogpu/trackheat/internal/projection"
)

// Frame is a set of points fitted onto a pixel canvas at one zoom level.
// North is up: y grows southward.
type Frame struct {
	Zoom    int
	Padding int

	// Width and Height are the canvas size in pixels.
	Width, Height int

	// MinX, MinY, MaxX and MaxY bound the track in projected pixels at
	// Zoom, before shifting and flipping.
	MinX, MinY, MaxX, MaxY float64

	// Points are the input points in input order.
	Points []ProjectedPoint
}

// NewFrame projects points at zoom and fits them into a canvas with
// padding pixels of margin on every side.
//
// The canvas size is the floored pixel extent of the points plus one,
// plus twice the padding, so every point lands inside the canvas. NewFrame returns ErrInvalidInput for an empty or
// non-finite point set and ErrDegenerateGeometry when the extent is
// under one pixel along either axis.
func NewFrame(points []GeoPoint, zoom, padding int) (*Frame, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidInput)
	}
	if padding < 0 {
		return nil, fmt.Errorf("%w: negative padding %d", ErrInvalidInput, padding)
	}

	f := &Frame{
		Zoom:    zoom,
		Padding: padding,
		MinX:    math.Inf(1),
		MinY:    math.Inf(1),
		MaxX:    math.Inf(-1),
		MaxY:    math.Inf(-1),
		Points:  make([]ProjectedPoint, len(points)),
	}

	for i, p := range points {
		x, y := worldPixel(p, zoom)
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("%w: point %d (%g, %g) does not project", ErrInvalidInput, i, p.Lat, p.Lon)
		}
		f.Points[i] = ProjectedPoint{X: x, Y: y, GeoPoint: p}
		f.MinX = min(f.MinX, x)
		f.MinY = min(f.MinY, y)
		f.MaxX = max(f.MaxX, x)
		f.MaxY = max(f.MaxY, y)
	}

	w := math.Floor(f.MaxX - f.MinX)
	h := math.Floor(f.MaxY - f.MinY)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: extent %gx%g px at zoom %d", ErrDegenerateGeometry, f.MaxX-f.MinX, f.MaxY-f.MinY, zoom)
	}
	if w+h > math.MaxInt32 {
		return nil, fmt.Errorf("%w: extent %gx%g px at zoom %d", ErrImageTooLarge, w, h, zoom)
	}
	f.Width = int(w) + 1 + 2*padding
	f.Height = int(h) + 1 + 2*padding

	for i := range f.Points {
		f.Points[i].X, f.Points[i].Y = f.place(f.Points[i].X, f.Points[i].Y)
	}
	return f, nil
}

// Project returns p's position on the frame canvas. Points outside the
// frame bounds map outside the canvas.
func (f *Frame) Project(p GeoPoint) ProjectedPoint {
	x, y := worldPixel(p, f.Zoom)
	x, y = f.place(x, y)
	return ProjectedPoint{X: x, Y: y, GeoPoint: p}
}

// place shifts a zoomed pixel so MinX lands on the left padding and
// flips y so MaxY lands on the top padding.
func (f *Frame) place(x, y float64) (float64, float64) {
	pad := float64(f.Padding)
	return x - f.MinX + pad, f.MaxY - y + pad
}

func worldPixel(p GeoPoint, zoom int) (float64, float64) {
	x, y := projection.Project(p.Lat, p.Lon)
	return projection.ScaleToZoom(x, y, zoom)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
