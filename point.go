package trackheat

import (
	"math"
	"slices"
	"time"

	"github.com/gogpu/trackheat/internal/geo"
)

// coordinateScale rounds coordinates to 6 decimal places, about 0.1 m.
const coordinateScale = 1e6

// GeoPoint is one timestamped track sample in decimal degrees.
type GeoPoint struct {
	Lat  float64
	Lon  float64
	Time time.Time
}

// NewGeoPoint returns a GeoPoint with lat and lon rounded to 6 decimal places.
func NewGeoPoint(lat, lon float64, t time.Time) GeoPoint {
	return GeoPoint{
		Lat:  RoundCoordinate(lat),
		Lon:  RoundCoordinate(lon),
		Time: t,
	}
}

// RoundCoordinate rounds a degree value to 6 decimal places.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

// DistanceTo returns the great-circle distance to q in meters.
func (p GeoPoint) DistanceTo(q GeoPoint) float64 {
	return geo.Distance(p.Lat, p.Lon, q.Lat, q.Lon)
}

// SpeedTo returns the speed between p and q in meters per second.
// It is 0 when both share a timestamp.
func (p GeoPoint) SpeedTo(q GeoPoint) float64 {
	return geo.SpeedBetween(p.Lat, p.Lon, p.Time, q.Lat, q.Lon, q.Time)
}

// ProjectedPoint is a GeoPoint placed on the pixel grid of a render.
// The geographic fields are kept for speed filtering.
type ProjectedPoint struct {
	X, Y float64
	GeoPoint
}

// SortByTime sorts points by timestamp, keeping the input order of
// points that share one.
func SortByTime(points []GeoPoint) {
	slices.SortStableFunc(points, func(a, b GeoPoint) int {
		return a.Time.Compare(b.Time)
	})
}
