package track

import (
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/gogpu/trackheat"
)

// Parse reads a GPX document and returns the points of all its tracks
// and segments in document order, coordinates rounded to 6 decimals.
// Points without a timestamp are skipped; untimed reports how many.
func Parse(r io.Reader) (points []trackheat.GeoPoint, untimed int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("track: read: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes is Parse for an in-memory document.
func ParseBytes(data []byte) (points []trackheat.GeoPoint, untimed int, err error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("track: parse GPX: %w", err)
	}

	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				if p.Timestamp.IsZero() {
					untimed++
					continue
				}
				points = append(points, trackheat.NewGeoPoint(p.Latitude, p.Longitude, p.Timestamp.UTC()))
			}
		}
	}
	return points, untimed, nil
}
