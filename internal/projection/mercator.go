// Package projection maps geographic coordinates onto the planar pixel
// grid used by the renderer.
//
// World coordinates are spherical Web Mercator meters (EPSG:3857, the
// "GOOGLE" projection). Pixel coordinates at a zoom level are world
// coordinates divided by 2^(MaxZoom-zoom).
package projection

import "math"

const (
	// MaxZoom is the zoom level at which one world unit is one pixel.
	MaxZoom = 16

	// SphereRadius is the Web Mercator sphere radius in meters.
	SphereRadius = 6378137.0
)

// Project converts decimal degrees to world coordinates. x grows east,
// y grows north. Inputs outside the valid latitude range produce
// infinite or NaN outputs; callers validate geographic ranges.
func Project(lat, lon float64) (x, y float64) {
	x = SphereRadius * lon * math.Pi / 180
	y = SphereRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}

// ScaleToZoom scales world coordinates to the pixel grid of zoom.
//
// The scale factor is an exact power of two applied with math.Ldexp, so
// points projected at the same zoom never drift relative to each other.
// Zoom levels above MaxZoom magnify.
func ScaleToZoom(x, y float64, zoom int) (float64, float64) {
	shift := zoom - MaxZoom
	return math.Ldexp(x, shift), math.Ldexp(y, shift)
}

// Divider returns 2^(MaxZoom-zoom), the world units per pixel at zoom.
func Divider(zoom int) float64 {
	return math.Ldexp(1, MaxZoom-zoom)
}
