// Package color maps blurred track intensity to RGBA through an eased,
// piecewise-linear color gradient.
//
// Gradients interpolate in sRGB by default, which is what the stop table
// is tuned for. InterpolateLinear blends RGB in linear light instead,
// using the lookup tables in this file.
//
// References:
//   - sRGB: https://www.w3.org/Graphics/Color/sRGB
package color

import "math"

// srgbToLinearLUT converts an sRGB channel value [0-255] to linear light [0-1].
var srgbToLinearLUT [256]float64

// linearToSRGBLUT converts linear light quantized to 12 bits to an sRGB
// channel value [0-255], kept fractional so interpolation stays smooth.
var linearToSRGBLUT [4096]float64

func init() {
	for i := 0; i < 256; i++ {
		s := float64(i) / 255.0
		var linear float64
		if s <= 0.04045 {
			linear = s / 12.92
		} else {
			linear = math.Pow((s+0.055)/1.055, 2.4)
		}
		srgbToLinearLUT[i] = linear
	}

	for i := 0; i < 4096; i++ {
		linear := float64(i) / 4095.0
		var s float64
		if linear <= 0.0031308 {
			s = linear * 12.92
		} else {
			s = 1.055*math.Pow(linear, 1.0/2.4) - 0.055
		}
		linearToSRGBLUT[i] = s * 255.0
	}
}

// toLinear converts an sRGB channel value to linear light.
func toLinear(s uint8) float64 {
	return srgbToLinearLUT[s]
}

// fromLinear converts linear light back to an sRGB channel value in [0, 255].
// Input is clamped to [0, 1].
func fromLinear(l float64) float64 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}
