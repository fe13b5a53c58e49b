package trackheat

import "errors"

// Render errors. They are wrapped with context, so match with errors.Is.
var (
	// ErrInvalidInput is returned for an empty point sequence or an
	// invalid RenderConfig.
	ErrInvalidInput = errors.New("trackheat: invalid input")

	// ErrDegenerateGeometry is returned when the output image would have
	// a non-positive width or height, for example when every point
	// projects to the same pixel.
	ErrDegenerateGeometry = errors.New("trackheat: degenerate geometry")

	// ErrImageTooLarge is returned when width*height exceeds
	// RenderConfig.MaxPixels.
	ErrImageTooLarge = errors.New("trackheat: image too large")
)
