package trackheat

import "time"

// RenderOption configures a RenderConfig during creation.
//
// Example:
//
//	cfg := trackheat.NewRenderConfig(
//	    trackheat.WithZoom(15),
//	    trackheat.WithBlurRadius(3),
//	)
type RenderOption func(*RenderConfig)

// NewRenderConfig returns DefaultRenderConfig with opts applied in order.
func NewRenderConfig(opts ...RenderOption) RenderConfig {
	cfg := DefaultRenderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithZoom sets the projection zoom level.
func WithZoom(zoom int) RenderOption {
	return func(c *RenderConfig) {
		c.Zoom = zoom
	}
}

// WithStrokeWidth sets the line width in pixels.
func WithStrokeWidth(w float64) RenderOption {
	return func(c *RenderConfig) {
		c.StrokeWidth = w
	}
}

// WithStrokeAlpha sets the intensity one stroke adds.
func WithStrokeAlpha(a float64) RenderOption {
	return func(c *RenderConfig) {
		c.StrokeAlpha = a
	}
}

// WithBlurRadius sets the blur sigma. Zero disables the blur.
func WithBlurRadius(r float64) RenderOption {
	return func(c *RenderConfig) {
		c.BlurRadius = r
	}
}

// WithMinAlpha sets the alpha ramp threshold and the alpha the ramp
// reaches there.
func WithMinAlpha(threshold, solid float64) RenderOption {
	return func(c *RenderConfig) {
		c.MinAlpha = threshold
		c.MinSolidAlpha = solid
	}
}

// WithMinSpeed sets the speed in m/s below which a segment is skipped.
func WithMinSpeed(mps float64) RenderOption {
	return func(c *RenderConfig) {
		c.MinSpeed = mps
	}
}

// WithMaxGap breaks paths whose consecutive points are further apart in
// time than d.
func WithMaxGap(d time.Duration) RenderOption {
	return func(c *RenderConfig) {
		c.MaxGap = d
	}
}

// WithPadding sets the pixel margin NewFrame keeps around the track.
func WithPadding(px int) RenderOption {
	return func(c *RenderConfig) {
		c.Padding = px
	}
}

// WithMaxPixels caps the render size. Zero removes the cap.
func WithMaxPixels(n int) RenderOption {
	return func(c *RenderConfig) {
		c.MaxPixels = n
	}
}

// WithColorStops replaces the gradient. The slice is copied.
func WithColorStops(stops []ColorStop) RenderOption {
	return func(c *RenderConfig) {
		c.ColorStops = append([]ColorStop(nil), stops...)
	}
}

// WithInterpolation selects the gradient blending space.
func WithInterpolation(m Interpolation) RenderOption {
	return func(c *RenderConfig) {
		c.Interpolation = m
	}
}
