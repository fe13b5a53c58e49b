// Package config loads trackheat settings from a YAML file.
//
// Every field has a default, so a file only needs the values it changes:
//
//	render:
//	  zoom: 14
//	  blur_radius: 3
//	input:
//	  dir: ~/tracks
//	  cache_path: ~/tracks/.trackheat.db
//	output:
//	  path: heatmap.tiff
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/trackheat"
	"github.com/gogpu/trackheat/track"
)

// Config is the complete application configuration.
type Config struct {
	Render  Render  `yaml:"render"`
	Input   Input   `yaml:"input"`
	Output  Output  `yaml:"output"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

// Render mirrors trackheat.RenderConfig.
type Render struct {
	Zoom          int           `yaml:"zoom" validate:"gte=0,lte=24"`
	StrokeWidth   float64       `yaml:"stroke_width" validate:"gt=0,lte=256"`
	StrokeAlpha   float64       `yaml:"stroke_alpha" validate:"gt=0,lte=255"`
	BlurRadius    float64       `yaml:"blur_radius" validate:"gte=0,lte=512"`
	MinAlpha      float64       `yaml:"min_alpha" validate:"gte=0,lte=1"`
	MinSolidAlpha float64       `yaml:"min_solid_alpha" validate:"gte=0,lte=255"`
	MinSpeed      float64       `yaml:"min_speed" validate:"gte=0"`
	MaxGap        time.Duration `yaml:"max_gap" validate:"gte=0"`
	Padding       int           `yaml:"padding" validate:"gte=0,lte=4096"`
	MaxPixels     int           `yaml:"max_pixels" validate:"gte=0"`
	Interpolation string        `yaml:"interpolation" validate:"oneof=srgb linear"`

	// ColorStops are [r, g, b, a] rows. Empty keeps the default gradient.
	ColorStops [][]int `yaml:"color_stops" validate:"omitempty,min=2,dive,len=4,dive,gte=0,lte=255"`
}

// Input selects and filters the tracks to load.
type Input struct {
	// Dir is scanned for .gpx files (not recursively).
	Dir string `yaml:"dir"`

	// Files are loaded in addition to Dir.
	Files []string `yaml:"files"`

	// CachePath is the SQLite parse cache. Empty disables it.
	CachePath string `yaml:"cache_path"`

	// DwellSpeed is the ingestion dwell filter threshold in m/s.
	DwellSpeed float64 `yaml:"dwell_speed" validate:"gte=0"`

	// Workers parse files concurrently; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0,lte=1024"`

	Bounds *Bounds    `yaml:"bounds"`
	From   *time.Time `yaml:"from"`
	To     *time.Time `yaml:"to"`
}

// Bounds is a latitude/longitude box in decimal degrees.
type Bounds struct {
	MinLat float64 `yaml:"min_lat" validate:"gte=-90,lte=90"`
	MinLon float64 `yaml:"min_lon" validate:"gte=-180,lte=180"`
	MaxLat float64 `yaml:"max_lat" validate:"gte=-90,lte=90"`
	MaxLon float64 `yaml:"max_lon" validate:"gte=-180,lte=180"`
}

// Output controls the written image.
type Output struct {
	Path string `yaml:"path" validate:"required"`

	// Format is png, tiff or bmp. Empty derives it from Path.
	Format string `yaml:"format" validate:"omitempty,oneof=png tiff tif bmp"`

	// Scale resizes the rendered image.
	Scale float64 `yaml:"scale" validate:"gt=0,lte=16"`
}

// Server configures the HTTP viewer.
type Server struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	r := trackheat.DefaultRenderConfig()
	return Config{
		Render: Render{
			Zoom:          r.Zoom,
			StrokeWidth:   r.StrokeWidth,
			StrokeAlpha:   r.StrokeAlpha,
			BlurRadius:    r.BlurRadius,
			MinAlpha:      r.MinAlpha,
			MinSolidAlpha: r.MinSolidAlpha,
			MinSpeed:      r.MinSpeed,
			MaxGap:        r.MaxGap,
			Padding:       r.Padding,
			MaxPixels:     r.MaxPixels,
			Interpolation: r.Interpolation.String(),
		},
		Input: Input{
			Dir:        ".",
			DwellSpeed: track.DefaultDwellSpeed,
		},
		Output: Output{
			Path:  "heatmap.png",
			Scale: 1,
		},
		Server: Server{
			Addr: "127.0.0.1:8080",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and cross-field rules. Errors wrap
// trackheat.ErrInvalidInput.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", trackheat.ErrInvalidInput, err)
	}
	if _, err := c.Input.Constraints(); err != nil {
		return err
	}
	if _, err := c.Output.ImageFormat(); err != nil {
		return fmt.Errorf("%w: %w", trackheat.ErrInvalidInput, err)
	}
	return nil
}

// RenderConfig converts the render section.
func (r Render) RenderConfig() trackheat.RenderConfig {
	cfg := trackheat.NewRenderConfig(
		trackheat.WithZoom(r.Zoom),
		trackheat.WithStrokeWidth(r.StrokeWidth),
		trackheat.WithStrokeAlpha(r.StrokeAlpha),
		trackheat.WithBlurRadius(r.BlurRadius),
		trackheat.WithMinAlpha(r.MinAlpha, r.MinSolidAlpha),
		trackheat.WithMinSpeed(r.MinSpeed),
		trackheat.WithMaxGap(r.MaxGap),
		trackheat.WithPadding(r.Padding),
		trackheat.WithMaxPixels(r.MaxPixels),
	)
	if r.Interpolation == trackheat.InterpolateLinear.String() {
		cfg.Interpolation = trackheat.InterpolateLinear
	}
	if len(r.ColorStops) > 0 {
		stops := make([]trackheat.ColorStop, len(r.ColorStops))
		for i, s := range r.ColorStops {
			stops[i] = trackheat.ColorStop{R: uint8(s[0]), G: uint8(s[1]), B: uint8(s[2]), A: uint8(s[3])}
		}
		cfg.ColorStops = stops
	}
	return cfg
}

// Constraints builds the point filter of the input section.
func (in Input) Constraints() (*track.Constraints, error) {
	c := track.NewConstraints()
	if b := in.Bounds; b != nil {
		if err := c.SetBounds(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon); err != nil {
			return nil, err
		}
	}
	var from, to time.Time
	if in.From != nil {
		from = *in.From
	}
	if in.To != nil {
		to = *in.To
	}
	if err := c.SetWindow(from, to); err != nil {
		return nil, err
	}
	return c, nil
}

// LoaderOptions returns the track loader options of the input section.
// The store, if any, is opened by the caller.
func (in Input) LoaderOptions() ([]track.Option, error) {
	c, err := in.Constraints()
	if err != nil {
		return nil, err
	}
	return []track.Option{
		track.WithWorkers(in.Workers),
		track.WithDwellSpeed(in.DwellSpeed),
		track.WithConstraints(c),
	}, nil
}

// ImageFormat returns Format, or the format implied by the Path extension.
func (o Output) ImageFormat() (trackheat.Format, error) {
	if o.Format != "" {
		return trackheat.ParseFormat(o.Format)
	}
	return trackheat.ParseFormat(filepath.Ext(o.Path))
}

// SlogLevel returns the slog level.
func (l Logging) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a logger writing to w in the configured format.
func (l Logging) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
