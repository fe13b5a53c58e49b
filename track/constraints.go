package track

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/gogpu/trackheat"
)

// Constraints selects points inside a latitude/longitude box and a time
// window. Bounds are inclusive. The zero value is not usable; start
// from NewConstraints, which accepts everything.
type Constraints struct {
	rect     s2.Rect
	from, to time.Time
}

// NewConstraints returns constraints that accept every point.
func NewConstraints() *Constraints {
	return &Constraints{rect: s2.FullRect()}
}

// SetBounds limits points to the box in decimal degrees. It returns an
// error wrapping trackheat.ErrInvalidInput when a minimum exceeds its
// maximum or a value is out of range.
func (c *Constraints) SetBounds(minLat, minLon, maxLat, maxLon float64) error {
	switch {
	case !inRange(minLat, 90) || !inRange(maxLat, 90):
		return fmt.Errorf("%w: latitude out of range [%g, %g]", trackheat.ErrInvalidInput, minLat, maxLat)
	case !inRange(minLon, 180) || !inRange(maxLon, 180):
		return fmt.Errorf("%w: longitude out of range [%g, %g]", trackheat.ErrInvalidInput, minLon, maxLon)
	case minLat > maxLat:
		return fmt.Errorf("%w: min lat %g > max lat %g", trackheat.ErrInvalidInput, minLat, maxLat)
	case minLon > maxLon:
		return fmt.Errorf("%w: min lon %g > max lon %g", trackheat.ErrInvalidInput, minLon, maxLon)
	}

	c.rect = s2.Rect{
		Lat: r1.Interval{Lo: radians(minLat), Hi: radians(maxLat)},
		Lng: s1.IntervalFromEndpoints(radians(minLon), radians(maxLon)),
	}
	return nil
}

// SetWindow limits points to timestamps in [from, to]. A zero time
// leaves that side open.
func (c *Constraints) SetWindow(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return fmt.Errorf("%w: min date %s > max date %s", trackheat.ErrInvalidInput,
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	c.from, c.to = from, to
	return nil
}

// Contains reports whether p satisfies the constraints.
func (c *Constraints) Contains(p trackheat.GeoPoint) bool {
	if !c.from.IsZero() && p.Time.Before(c.from) {
		return false
	}
	if !c.to.IsZero() && p.Time.After(c.to) {
		return false
	}
	return c.rect.ContainsLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
}

// Apply returns the points that satisfy the constraints, in order.
func (c *Constraints) Apply(points []trackheat.GeoPoint) []trackheat.GeoPoint {
	out := make([]trackheat.GeoPoint, 0, len(points))
	for _, p := range points {
		if c.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}
