// Package trackheat renders GPS tracks as heatmap images.
//
// # Overview
//
// Overlapping track segments accumulate into a single-channel intensity
// buffer, the buffer is diffused with a three-pass box blur that
// approximates a Gaussian, and the result is mapped through an eased
// color gradient to a non-premultiplied RGBA image.
//
// # Quick Start
//
//	import "github.com/gogpu/trackheat"
//
//	points := []trackheat.GeoPoint{
//	    trackheat.NewGeoPoint(52.5200, 13.4050, t0),
//	    trackheat.NewGeoPoint(52.5210, 13.4070, t0.Add(30*time.Second)),
//	}
//
//	cfg := trackheat.NewRenderConfig(trackheat.WithZoom(15))
//	pm, frame, err := trackheat.RenderGeo(points, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = pm.SavePNG("heatmap.png")
//
// # Pipeline
//
// RenderGeo fits the points into a [Frame] (spherical Web Mercator at the
// configured zoom, north up) and calls [Render]. Render can also be fed
// pre-projected points directly:
//
//   - Rasterize: consecutive points are stroked as variable-width
//     anti-aliased lines. A segment slower than MinSpeed, or one spanning
//     more than MaxGap, breaks the path instead of being drawn.
//   - Blur: the buffer is blurred in place with BlurRadius as sigma.
//   - Colorize: intensity is normalized by the pre-blur maximum, eased,
//     and looked up in the ColorStops gradient. Faint pixels below
//     MinAlpha get a linear alpha ramp up to MinSolidAlpha.
//
// Each render owns its buffers, so independent renders may run
// concurrently.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to receive debug
// timings for each pass.
//
// # Related Packages
//
//   - [github.com/gogpu/trackheat/track]: GPX loading, filtering and caching
//   - [github.com/gogpu/trackheat/config]: YAML configuration
//   - [github.com/gogpu/trackheat/cache]: in-memory parse cache
package trackheat
