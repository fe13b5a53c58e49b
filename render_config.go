package trackheat

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gogpu/trackheat/internal/color"
)

// ColorStop is one RGBA anchor of the heatmap gradient, channels 0-255.
type ColorStop = color.Stop

// Interpolation selects how RGB channels blend between color stops.
type Interpolation = color.Interpolation

// Interpolation modes.
const (
	// InterpolateSRGB blends stored sRGB values, matching browser canvas output.
	InterpolateSRGB = color.InterpolateSRGB
	// InterpolateLinear blends RGB in linear light.
	InterpolateLinear = color.InterpolateLinear
)

// Render defaults.
const (
	DefaultZoom          = 13
	DefaultStrokeWidth   = 3.0
	DefaultStrokeAlpha   = 10.0
	DefaultBlurRadius    = 2.0
	DefaultMinAlpha      = 10.0 / 255
	DefaultMinSolidAlpha = 100.0
	DefaultMinSpeed      = 1000.0 / 3600 // 1 km/h
	DefaultPadding       = 8
	DefaultMaxPixels     = 64 << 20
)

var defaultColorStops = []ColorStop{
	{R: 0, G: 0, B: 150, A: 100},     // dark blue
	{R: 0, G: 150, B: 150, A: 133},   // cyan
	{R: 0, G: 150, B: 0, A: 166},     // green
	{R: 255, G: 0, B: 0, A: 200},     // red
	{R: 255, G: 255, B: 0, A: 233},   // yellow
	{R: 255, G: 0, B: 0, A: 255},     // red
	{R: 255, G: 255, B: 255, A: 255}, // white
}

// DefaultColorStops returns a copy of the 7-stop heatmap gradient, dark
// blue through cyan, green, red, yellow and red to white.
func DefaultColorStops() []ColorStop {
	return slices.Clone(defaultColorStops)
}

// RenderConfig holds the parameters of one render. It is a plain value;
// Render never modifies it.
type RenderConfig struct {
	// Zoom is the projection zoom level used by NewFrame and RenderGeo.
	// Levels above 16 magnify.
	Zoom int `validate:"gte=0,lte=24"`

	// StrokeWidth is the line width in pixels.
	StrokeWidth float64 `validate:"gt=0,lte=256"`

	// StrokeAlpha is the intensity (0-255) a single full-coverage stroke adds.
	StrokeAlpha float64 `validate:"gt=0,lte=255"`

	// BlurRadius is the Gaussian sigma approximated by the box blur.
	// Zero disables blurring.
	BlurRadius float64 `validate:"gte=0,lte=512"`

	// MinAlpha is the normalized intensity below which alpha follows a
	// linear ramp up to MinSolidAlpha.
	MinAlpha float64 `validate:"gte=0,lte=1"`

	// MinSolidAlpha is the alpha (0-255) reached by the ramp at MinAlpha.
	MinSolidAlpha float64 `validate:"gte=0,lte=255"`

	// MinSpeed in m/s. Slower segments break the path instead of being drawn.
	MinSpeed float64 `validate:"gte=0"`

	// MaxGap breaks the path between points further apart in time.
	// Zero disables the check.
	MaxGap time.Duration `validate:"gte=0"`

	// Padding is the margin in pixels NewFrame adds around the track
	// bounding box.
	Padding int `validate:"gte=0,lte=4096"`

	// MaxPixels caps width*height of a render. Zero disables the cap.
	MaxPixels int `validate:"gte=0"`

	// ColorStops is the gradient, indexed by eased intensity.
	ColorStops []ColorStop `validate:"min=2"`

	// Interpolation selects the RGB blending space between stops.
	Interpolation Interpolation `validate:"lte=1"`
}

// DefaultRenderConfig returns the reference heatmap settings.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Zoom:          DefaultZoom,
		StrokeWidth:   DefaultStrokeWidth,
		StrokeAlpha:   DefaultStrokeAlpha,
		BlurRadius:    DefaultBlurRadius,
		MinAlpha:      DefaultMinAlpha,
		MinSolidAlpha: DefaultMinSolidAlpha,
		MinSpeed:      DefaultMinSpeed,
		Padding:       DefaultPadding,
		MaxPixels:     DefaultMaxPixels,
		ColorStops:    DefaultColorStops(),
		Interpolation: InterpolateSRGB,
	}
}

// validate is shared; validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

// Validate reports whether the configuration can be rendered. The error
// wraps ErrInvalidInput.
func (c RenderConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: render config: %w", ErrInvalidInput, err)
	}
	return nil
}

func (c RenderConfig) gradient() (*color.Gradient, error) {
	g, err := color.NewGradient(c.ColorStops, c.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return g, nil
}
