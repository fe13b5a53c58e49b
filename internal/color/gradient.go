package color

import (
	"errors"
	"math"
)

// ErrTooFewStops is returned when a gradient has fewer than two stops.
var ErrTooFewStops = errors.New("color: gradient needs at least two stops")

// Stop is one gradient anchor; channels are 0-255.
type Stop struct {
	R, G, B, A uint8
}

// Interpolation selects the space RGB channels are blended in.
type Interpolation uint8

const (
	// InterpolateSRGB blends stored channel values directly.
	InterpolateSRGB Interpolation = iota
	// InterpolateLinear blends RGB in linear light. Alpha stays linear.
	InterpolateLinear
)

// String returns the configuration name of the mode.
func (m Interpolation) String() string {
	switch m {
	case InterpolateSRGB:
		return "srgb"
	case InterpolateLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Gradient is an ordered stop table indexed by phase 0..N-1.
// It is immutable after construction and safe for concurrent use.
type Gradient struct {
	stops []Stop
	mode  Interpolation
}

// NewGradient copies stops into a gradient.
func NewGradient(stops []Stop, mode Interpolation) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}
	s := make([]Stop, len(stops))
	copy(s, stops)
	return &Gradient{stops: s, mode: mode}, nil
}

// Len returns the number of stops.
func (g *Gradient) Len() int {
	return len(g.stops)
}

// Stops returns a copy of the stop table.
func (g *Gradient) Stops() []Stop {
	s := make([]Stop, len(g.stops))
	copy(s, g.stops)
	return s
}

// Ease is the ease-out curve 1-(p-1)^2. It is monotonically increasing
// on [0, 1], lifting low values and flattening near 1.
func Ease(p float64) float64 {
	d := p - 1
	return 1 - math.Abs(d*d)
}

// Phase maps an eased value in [0, 1] to a position in [0, N-1] along
// the stop table. Values outside [0, 1] are clamped.
func (g *Gradient) Phase(eased float64) float64 {
	return clamp01(eased) * float64(len(g.stops)-1)
}

// stage splits a phase into the lower stop index and the fraction toward
// the next stop. The index is clamped to N-2 so the top of the range
// lands exactly on the last stop.
func (g *Gradient) stage(phase float64) (int, float64) {
	idx := int(math.Floor(phase))
	percent := phase - float64(idx)
	if last := len(g.stops) - 2; idx > last {
		idx, percent = last, 1
	}
	if idx < 0 {
		idx, percent = 0, 0
	}
	return idx, percent
}

// At returns the interpolated color for an eased value as fractional
// 0-255 channels.
func (g *Gradient) At(eased float64) (r, gr, b, a float64) {
	idx, t := g.stage(g.Phase(eased))
	c1 := g.stops[idx]
	c2 := g.stops[min(idx+1, len(g.stops)-1)]

	a = lerp(float64(c1.A), float64(c2.A), t)
	if g.mode == InterpolateLinear {
		r = fromLinear(lerp(toLinear(c1.R), toLinear(c2.R), t))
		gr = fromLinear(lerp(toLinear(c1.G), toLinear(c2.G), t))
		b = fromLinear(lerp(toLinear(c1.B), toLinear(c2.B), t))
		return r, gr, b, a
	}

	r = lerp(float64(c1.R), float64(c2.R), t)
	gr = lerp(float64(c1.G), float64(c2.G), t)
	b = lerp(float64(c1.B), float64(c2.B), t)
	return r, gr, b, a
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps a value to [0, 1] range. NaN maps to 0.
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
