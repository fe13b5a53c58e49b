package track

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/trackheat"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type samplePoint struct {
	lat, lon float64
	sec      int // seconds after t0, or noTime
}

// noTime marks a sample written without a <time> element.
const noTime = math.MinInt

// gpxDoc renders a GPX 1.1 document with one track per segment list.
func gpxDoc(tracks ...[][]samplePoint) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="trackheat-test" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	for i, segs := range tracks {
		fmt.Fprintf(&b, "<trk><name>track %d</name>\n", i)
		for _, seg := range segs {
			b.WriteString("<trkseg>\n")
			for _, p := range seg {
				fmt.Fprintf(&b, `<trkpt lat="%v" lon="%v">`, p.lat, p.lon)
				if p.sec != noTime {
					fmt.Fprintf(&b, "<time>%s</time>", t0.Add(time.Duration(p.sec)*time.Second).Format(time.RFC3339))
				}
				b.WriteString("</trkpt>\n")
			}
			b.WriteString("</trkseg>\n")
		}
		b.WriteString("</trk>\n")
	}
	b.WriteString("</gpx>\n")
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// walk returns points heading north at about 10 m/s, one per second.
func walk(lat0 float64, startSec, n int) []samplePoint {
	pts := make([]samplePoint, n)
	for i := range pts {
		pts[i] = samplePoint{lat: lat0 + float64(i)*0.00009, lon: 13.4, sec: startSec + i}
	}
	return pts
}

func geo(lat, lon float64, sec int) trackheat.GeoPoint {
	return trackheat.GeoPoint{Lat: lat, Lon: lon, Time: t0.Add(time.Duration(sec) * time.Second)}
}

func isSorted(points []trackheat.GeoPoint) bool {
	for i := 1; i < len(points); i++ {
		if points[i].Time.Before(points[i-1].Time) {
			return false
		}
	}
	return true
}
