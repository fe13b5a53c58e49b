package trackheat

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Pixmap is the rendered heatmap: row-major, 4 bytes per pixel,
// non-premultiplied RGBA.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (non-premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// NRGBAAt returns the pixel at (x, y). Out-of-bounds reads are transparent.
func (p *Pixmap) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage copies the pixmap into an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// Scale returns a copy resized by factor with Catmull-Rom resampling.
// A factor of 1 returns p itself.
func (p *Pixmap) Scale(factor float64) (*Pixmap, error) {
	return p.ScaleWithin(factor, 0)
}

// ScaleWithin is Scale with a cap on the resized width*height. It
// returns ErrImageTooLarge before allocating when the result would
// exceed maxPixels. Zero disables the cap.
func (p *Pixmap) ScaleWithin(factor float64, maxPixels int) (*Pixmap, error) {
	if factor == 1 {
		return p, nil
	}
	if !(factor > 0) || math.IsInf(factor, 1) {
		return nil, fmt.Errorf("%w: scale %g of %dx%d", ErrInvalidInput, factor, p.width, p.height)
	}
	fw := math.Floor(float64(p.width)*factor + 0.5)
	fh := math.Floor(float64(p.height)*factor + 0.5)
	if fw <= 0 || fh <= 0 {
		return nil, fmt.Errorf("%w: scale %g of %dx%d", ErrInvalidInput, factor, p.width, p.height)
	}
	if fw+fh > math.MaxInt32 || (maxPixels > 0 && fw*fh > float64(maxPixels)) {
		return nil, fmt.Errorf("%w: scale %g of %dx%d exceeds %d pixels", ErrImageTooLarge, factor, p.width, p.height, maxPixels)
	}
	w, h := int(fw), int(fh)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), p.ToImage(), p.Bounds(), xdraw.Src, nil)
	return &Pixmap{width: w, height: h, data: dst.Pix}, nil
}

// Format is an output image encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// ParseFormat returns the Format named by s, case-insensitively.
// "tif" is accepted for TIFF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("image: unsupported format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatTIFF:
		return "image/tiff"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// Encode writes the pixmap to w in format f.
func (p *Pixmap) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatPNG:
		return p.EncodePNG(w)
	case FormatTIFF:
		return p.EncodeTIFF(w)
	case FormatBMP:
		return p.EncodeBMP(w)
	default:
		return fmt.Errorf("image: unsupported format %q", f)
	}
}

// EncodePNG encodes the pixmap as PNG to the given writer.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, p.ToImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeTIFF encodes the pixmap as deflate-compressed TIFF.
func (p *Pixmap) EncodeTIFF(w io.Writer) error {
	opts := &tiff.Options{Compression: tiff.Deflate}
	if err := tiff.Encode(w, p.ToImage(), opts); err != nil {
		return fmt.Errorf("image: encode TIFF: %w", err)
	}
	return nil
}

// EncodeBMP encodes the pixmap as 32-bit BMP.
func (p *Pixmap) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, p.ToImage()); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	return p.Save(path, FormatPNG)
}

// Save writes the pixmap to path in format f.
func (p *Pixmap) Save(path string, f Format) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := p.Encode(file, f); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
