package track

import (
	"math"

	"github.com/gogpu/trackheat"
)

// DefaultDwellSpeed is the ingestion speed threshold in m/s (1 km/h).
const DefaultDwellSpeed = 0.2778

// FilterDwell drops points recorded while standing still: a point is
// removed when both the speed from its predecessor and the speed to its
// successor are below minSpeed. Neighbors are taken from the input, so
// a run of stationary points is removed as a whole. A neighbor with the
// same timestamp never counts as slow. The first and last points are
// always kept. The input is not modified.
func FilterDwell(points []trackheat.GeoPoint, minSpeed float64) []trackheat.GeoPoint {
	if len(points) < 3 {
		return append([]trackheat.GeoPoint(nil), points...)
	}

	out := make([]trackheat.GeoPoint, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points)-1; i++ {
		in := dwellSpeed(points[i-1], points[i])
		next := dwellSpeed(points[i], points[i+1])
		if in < minSpeed && next < minSpeed {
			continue
		}
		out = append(out, points[i])
	}
	return append(out, points[len(points)-1])
}

// dwellSpeed is the speed from a to b, infinite when no time passed.
func dwellSpeed(a, b trackheat.GeoPoint) float64 {
	if a.Time.Equal(b.Time) {
		return math.Inf(1)
	}
	return a.SpeedTo(b)
}
