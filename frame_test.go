package trackheat

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewFrame(t *testing.T) {
	points := []GeoPoint{
		{Lat: 0, Lon: 0, Time: baseTime},
		{Lat: 0.01, Lon: 0.02, Time: baseTime.Add(time.Minute)},
	}

	f, err := NewFrame(points, 13, 8)
	if err != nil {
		t.Fatalf("NewFrame() = %v", err)
	}

	// Extent at zoom 13 is about 278.30 x 139.15 px.
	if f.Width != 279+16 || f.Height != 140+16 {
		t.Errorf("size = %dx%d, want %dx%d", f.Width, f.Height, 279+16, 140+16)
	}
	if len(f.Points) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(f.Points))
	}

	sw, ne := f.Points[0], f.Points[1]
	if math.Abs(sw.X-8) > 1e-9 {
		t.Errorf("south-west X = %v, want 8", sw.X)
	}
	if math.Abs(ne.Y-8) > 1e-9 {
		t.Errorf("north-east Y = %v, want 8", ne.Y)
	}
	// North is up.
	if !(ne.Y < sw.Y) {
		t.Errorf("north-east Y %v should be above south-west Y %v", ne.Y, sw.Y)
	}
	if math.Abs(sw.Y-(8+139.14936)) > 1e-4 || math.Abs(ne.X-(8+278.29873)) > 1e-4 {
		t.Errorf("corners = (%v, %v) (%v, %v)", sw.X, sw.Y, ne.X, ne.Y)
	}
	// Geographic fields ride along.
	if ne.Lat != 0.01 || ne.Lon != 0.02 || !ne.Time.Equal(points[1].Time) {
		t.Errorf("geo fields lost: %+v", ne.GeoPoint)
	}
	for _, p := range f.Points {
		if p.X < 0 || p.X >= float64(f.Width) || p.Y < 0 || p.Y >= float64(f.Height) {
			t.Errorf("point (%v, %v) outside %dx%d canvas", p.X, p.Y, f.Width, f.Height)
		}
	}

	// Project places further points consistently.
	again := f.Project(points[1])
	if again.X != ne.X || again.Y != ne.Y {
		t.Errorf("Project = (%v, %v), want (%v, %v)", again.X, again.Y, ne.X, ne.Y)
	}
}

func TestNewFramePointsInsideCanvas(t *testing.T) {
	points := []GeoPoint{
		{Lat: 52.5200, Lon: 13.4050, Time: baseTime},
		{Lat: 52.5250, Lon: 13.4120, Time: baseTime.Add(time.Minute)},
		{Lat: 52.5230, Lon: 13.4080, Time: baseTime.Add(2 * time.Minute)},
	}
	tests := []struct {
		zoom, padding int
	}{
		{16, 0},
		{13, 0},
		{16, 1},
		{10, 8},
	}
	for _, tt := range tests {
		f, err := NewFrame(points, tt.zoom, tt.padding)
		if err != nil {
			t.Fatalf("NewFrame(zoom %d, padding %d) = %v", tt.zoom, tt.padding, err)
		}
		for i, p := range f.Points {
			if p.X < 0 || p.X >= float64(f.Width) || p.Y < 0 || p.Y >= float64(f.Height) {
				t.Errorf("zoom %d padding %d: point %d (%v, %v) outside %dx%d canvas",
					tt.zoom, tt.padding, i, p.X, p.Y, f.Width, f.Height)
			}
		}
	}
}

func TestNewFrameZoomDoublesExtent(t *testing.T) {
	points := []GeoPoint{
		{Lat: 47.0, Lon: 8.0},
		{Lat: 47.1, Lon: 8.2},
	}
	f12, err := NewFrame(points, 12, 0)
	if err != nil {
		t.Fatalf("NewFrame(12) = %v", err)
	}
	f13, err := NewFrame(points, 13, 0)
	if err != nil {
		t.Fatalf("NewFrame(13) = %v", err)
	}

	w12 := f12.MaxX - f12.MinX
	w13 := f13.MaxX - f13.MinX
	if w13 != 2*w12 {
		t.Errorf("extent at zoom 13 = %v, want exactly 2 * %v", w13, w12)
	}
}

func TestNewFrameErrors(t *testing.T) {
	tests := []struct {
		name    string
		points  []GeoPoint
		padding int
		want    error
	}{
		{"empty", nil, 0, ErrInvalidInput},
		{"negative padding", []GeoPoint{{Lat: 0}, {Lat: 1, Lon: 1}}, -1, ErrInvalidInput},
		{"identical points", []GeoPoint{{Lat: 10, Lon: 10}, {Lat: 10, Lon: 10}}, 4, ErrDegenerateGeometry},
		{"single point", []GeoPoint{{Lat: 10, Lon: 10}}, 4, ErrDegenerateGeometry},
		{"east-west only", []GeoPoint{{Lat: 10, Lon: 10}, {Lat: 10, Lon: 11}}, 4, ErrDegenerateGeometry},
		{"not projectable", []GeoPoint{{Lat: math.NaN(), Lon: 0}, {Lat: 1, Lon: 1}}, 0, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrame(tt.points, 13, tt.padding)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewFrame() error = %v, want %v", err, tt.want)
			}
		})
	}
}
