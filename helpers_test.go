package trackheat

import (
	"math"
	"time"
)

var baseTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

// projected builds a canvas point with geographic fields at sec seconds
// after baseTime.
func projected(x, y, lat, lon float64, sec int) ProjectedPoint {
	return ProjectedPoint{
		X: x,
		Y: y,
		GeoPoint: GeoPoint{
			Lat:  lat,
			Lon:  lon,
			Time: baseTime.Add(time.Duration(sec) * time.Second),
		},
	}
}

// segmentDistance returns the distance from (px, py) to the segment
// (x0, y0)-(x1, y1).
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	t := ((px-x0)*dx + (py-y0)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}

// opaquePixels counts pixels with non-zero alpha.
func opaquePixels(pm *Pixmap) int {
	n := 0
	data := pm.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0 {
			n++
		}
	}
	return n
}
