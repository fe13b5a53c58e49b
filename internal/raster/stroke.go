package raster

// Stroke plots line coverage into an Intensity buffer, scaling every
// weight by a fixed per-stroke alpha.
type Stroke struct {
	buf   *Intensity
	alpha float64
}

// NewStroke returns a plotter that adds weight*alpha to buf.
func NewStroke(buf *Intensity, alpha float64) *Stroke {
	return &Stroke{buf: buf, alpha: alpha}
}

// Plot implements Plotter.
func (s *Stroke) Plot(x, y int, weight float64) {
	s.buf.Add(x, y, weight*s.alpha)
}

// Size implements Plotter.
func (s *Stroke) Size() (int, int) {
	return s.buf.width, s.buf.height
}

// Path strokes a polyline the way a canvas path does: MoveTo starts a
// new subpath without drawing, LineTo draws from the current point.
type Path struct {
	plotter  Plotter
	width    float64
	x, y     float64
	started  bool
	segments int
}

// NewPath returns a path that draws lines of width through p.
func NewPath(p Plotter, width float64) *Path {
	return &Path{plotter: p, width: width}
}

// MoveTo sets the current point without drawing.
func (p *Path) MoveTo(x, y float64) {
	p.x, p.y = x, y
	p.started = true
}

// LineTo draws a segment from the current point to (x, y) and makes
// (x, y) current. Without a current point it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.started {
		p.MoveTo(x, y)
		return
	}
	DrawLine(p.plotter, p.x, p.y, x, y, p.width)
	p.segments++
	p.x, p.y = x, y
}

// Segments returns the number of segments drawn so far.
func (p *Path) Segments() int {
	return p.segments
}
