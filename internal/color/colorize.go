package color

// Colorizer converts normalized intensity to RGBA.
type Colorizer struct {
	// Gradient supplies the RGB channels and, above MinAlpha, the alpha.
	Gradient *Gradient

	// MinAlpha is the normalized intensity below which alpha follows a
	// linear ramp instead of the gradient.
	MinAlpha float64

	// MinSolidAlpha is the alpha (0-255) the ramp reaches at MinAlpha.
	MinSolidAlpha float64
}

// Pixel returns the color for one intensity value. maxObserved is the
// largest raw intensity of the render. Zero intensity is fully
// transparent black.
func (c *Colorizer) Pixel(intensity, maxObserved float64) (r, g, b, a uint8) {
	if !(intensity > 0) || !(maxObserved > 0) {
		return 0, 0, 0, 0
	}

	norm := clamp01(intensity / maxObserved)
	rf, gf, bf, af := c.Gradient.At(Ease(norm))
	if c.MinAlpha > 0 && norm < c.MinAlpha {
		af = norm * 255 * (c.MinSolidAlpha / (c.MinAlpha * 255))
	}
	return clampUint8(rf), clampUint8(gf), clampUint8(bf), clampUint8(af)
}

// Colorize writes the color of every cell of src into dst as
// non-premultiplied RGBA, 4 bytes per cell. dst must hold 4*len(src) bytes.
func (c *Colorizer) Colorize(src []float64, maxObserved float64, dst []uint8) {
	for i, v := range src {
		j := i * 4
		dst[j+0], dst[j+1], dst[j+2], dst[j+3] = c.Pixel(v, maxObserved)
	}
}

// clampUint8 clamps v to [0, 255] and rounds half up.
func clampUint8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
