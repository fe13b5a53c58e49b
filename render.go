package trackheat

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/trackheat/internal/color"
	"github.com/gogpu/trackheat/internal/filter"
	"github.com/gogpu/trackheat/internal/geo"
	"github.com/gogpu/trackheat/internal/raster"
)

// Render draws points onto a width x height heatmap.
//
// Points must already be placed on the canvas; see NewFrame. Consecutive
// points are stroked in order, so the sequence should be sorted by time.
func Render(points []ProjectedPoint, width, height int, cfg RenderConfig) (*Pixmap, error) {
	return RenderContext(context.Background(), points, width, height, cfg)
}

// RenderContext is Render with cancellation. ctx is checked between
// passes; a pass that has started always runs to completion. A
// cancellation is returned as ctx.Err() without wrapping.
func RenderContext(ctx context.Context, points []ProjectedPoint, width, height int, cfg RenderConfig) (*Pixmap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidInput)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrDegenerateGeometry, width, height)
	}
	if cfg.MaxPixels > 0 && width > cfg.MaxPixels/height {
		return nil, fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, cfg.MaxPixels)
	}
	grad, err := cfg.gradient()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := Logger()

	start := time.Now()
	buf := raster.NewIntensity(width, height)
	drawn, skipped := rasterize(buf, points, cfg)
	log.Debug("trackheat: pass done", "pass", "rasterize",
		"width", width, "height", height,
		"segments", drawn, "skipped", skipped,
		"took", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Normalization uses the peak before blurring.
	start = time.Now()
	maxObserved := buf.Max()
	log.Debug("trackheat: pass done", "pass", "measure", "max", maxObserved, "took", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	filter.GaussBlur(buf.Data(), width, height, cfg.BlurRadius)
	log.Debug("trackheat: pass done", "pass", "blur", "sigma", cfg.BlurRadius, "took", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	pm := NewPixmap(width, height)
	c := color.Colorizer{
		Gradient:      grad,
		MinAlpha:      cfg.MinAlpha,
		MinSolidAlpha: cfg.MinSolidAlpha,
	}
	c.Colorize(buf.Data(), maxObserved, pm.Data())
	log.Debug("trackheat: pass done", "pass", "colorize", "took", time.Since(start))

	return pm, nil
}

// RenderGeo fits points into a Frame at cfg.Zoom with cfg.Padding and
// renders it. The frame is returned so callers can locate other
// coordinates on the image.
func RenderGeo(points []GeoPoint, cfg RenderConfig) (*Pixmap, *Frame, error) {
	return RenderGeoContext(context.Background(), points, cfg)
}

// RenderGeoContext is RenderGeo with cancellation.
func RenderGeoContext(ctx context.Context, points []GeoPoint, cfg RenderConfig) (*Pixmap, *Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	frame, err := NewFrame(points, cfg.Zoom, cfg.Padding)
	if err != nil {
		return nil, nil, err
	}
	Logger().Debug("trackheat: pass done", "pass", "project",
		"points", len(points), "zoom", cfg.Zoom,
		"took", time.Since(start))

	pm, err := RenderContext(ctx, frame.Points, frame.Width, frame.Height, cfg)
	if err != nil {
		return nil, nil, err
	}
	return pm, frame, nil
}

// rasterize strokes consecutive points into buf and returns the number
// of segments drawn and skipped.
func rasterize(buf *raster.Intensity, points []ProjectedPoint, cfg RenderConfig) (drawn, skipped int) {
	path := raster.NewPath(raster.NewStroke(buf, cfg.StrokeAlpha), cfg.StrokeWidth)
	for i := range points {
		p := &points[i]
		if i > 0 && !breaksPath(&points[i-1], p, cfg) {
			path.LineTo(p.X, p.Y)
			continue
		}
		if i > 0 {
			skipped++
		}
		path.MoveTo(p.X, p.Y)
	}
	return path.Segments(), skipped
}

// breaksPath reports whether the segment prev->p is skipped: it is
// slower than MinSpeed or spans more than MaxGap.
func breaksPath(prev, p *ProjectedPoint, cfg RenderConfig) bool {
	elapsed := p.Time.Sub(prev.Time)
	if cfg.MaxGap > 0 && (elapsed > cfg.MaxGap || elapsed < -cfg.MaxGap) {
		return true
	}
	speed := geo.Speed(prev.DistanceTo(p.GeoPoint), elapsed)
	return speed < cfg.MinSpeed
}
