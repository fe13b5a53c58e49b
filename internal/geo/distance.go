// Package geo provides great-circle distance and speed between track fixes.
package geo

import (
	"math"
	"time"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two
// coordinates given in decimal degrees.
//
// s2.LatLng.Distance evaluates the haversine formula, so the result is
// the haversine distance on a sphere of radius EarthRadiusMeters.
// NaN or infinite inputs propagate to the result.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Unbounded reports whether an elapsed duration carries no usable
// magnitude: zero, or saturated at the limits of time.Duration
// (time.Time.Sub clamps there when the true gap does not fit).
func Unbounded(elapsed time.Duration) bool {
	return elapsed == 0 || elapsed == math.MaxInt64 || elapsed == math.MinInt64
}

// Speed returns distance/|elapsed| in meters per second.
//
// Unbounded elapsed durations yield 0 instead of Inf or NaN so that the
// value can safely drive skip decisions.
func Speed(distance float64, elapsed time.Duration) float64 {
	if Unbounded(elapsed) {
		return 0
	}
	seconds := math.Abs(elapsed.Seconds())
	return distance / seconds
}

// SpeedBetween is Speed over the haversine distance between two fixes.
func SpeedBetween(lat1, lon1 float64, t1 time.Time, lat2, lon2 float64, t2 time.Time) float64 {
	return Speed(Distance(lat1, lon1, lat2, lon2), t2.Sub(t1))
}
