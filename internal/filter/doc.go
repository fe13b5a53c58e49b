// Package filter blurs intensity buffers.
//
// GaussBlur approximates a Gaussian of standard deviation sigma with
// three successive box blurs whose widths come from BoxesForGauss. Each
// box blur is separable: a horizontal 1-D pass followed by a vertical
// one, so a full blur is six linear sweeps regardless of sigma.
//
// Boundaries clamp to the edge: samples before the first or after the
// last element repeat that element, which avoids darkening the border.
package filter
