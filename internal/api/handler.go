package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/trackheat"
	"github.com/gogpu/trackheat/cache"
	"github.com/gogpu/trackheat/track"
)

// Tracks supplies the points behind every request.
type Tracks interface {
	Load(ctx context.Context) (*track.Result, error)
}

// TracksFunc adapts a function to Tracks.
type TracksFunc func(ctx context.Context) (*track.Result, error)

// Load calls f.
func (f TracksFunc) Load(ctx context.Context) (*track.Result, error) {
	return f(ctx)
}

// cacheStatser is implemented by Tracks backed by a parse cache.
type cacheStatser interface {
	CacheStats() cache.Stats
}

// storeStatser is implemented by Tracks backed by a SQLite store.
type storeStatser interface {
	StoreStats(ctx context.Context) (track.StoreStats, error)
}

// Handler renders heatmaps from a Tracks source.
type Handler struct {
	tracks Tracks
	render trackheat.RenderConfig
}

// NewHandler returns a handler rendering with cfg unless a request
// overrides it.
func NewHandler(tracks Tracks, cfg trackheat.RenderConfig) *Handler {
	cfg.ColorStops = append([]trackheat.ColorStop(nil), cfg.ColorStops...)
	return &Handler{tracks: tracks, render: cfg}
}

// HeatmapQuery holds the request overrides of a heatmap render.
type HeatmapQuery struct {
	Zoom   *int      `form:"zoom" binding:"omitempty,gte=0,lte=24"`
	Blur   *float64  `form:"blur" binding:"omitempty,gte=0,lte=64"`
	Stroke *float64  `form:"stroke" binding:"omitempty,gt=0,lte=64"`
	Scale  float64   `form:"scale" binding:"omitempty,gt=0,lte=4"`
	Format string    `form:"format" binding:"omitempty,oneof=png tiff tif bmp"`
	BBox   string    `form:"bbox"`
	From   time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// apply returns base with the query overrides.
func (q HeatmapQuery) apply(base trackheat.RenderConfig) trackheat.RenderConfig {
	if q.Zoom != nil {
		base.Zoom = *q.Zoom
	}
	if q.Blur != nil {
		base.BlurRadius = *q.Blur
	}
	if q.Stroke != nil {
		base.StrokeWidth = *q.Stroke
	}
	return base
}

// constraints returns the bbox and time filter of the query, or nil
// when the query sets neither.
func (q HeatmapQuery) constraints() (*track.Constraints, error) {
	if q.BBox == "" && q.From.IsZero() && q.To.IsZero() {
		return nil, nil
	}
	c := track.NewConstraints()
	if q.BBox != "" {
		v, err := parseBBox(q.BBox)
		if err != nil {
			return nil, err
		}
		if err := c.SetBounds(v[0], v[1], v[2], v[3]); err != nil {
			return nil, err
		}
	}
	if err := c.SetWindow(q.From, q.To); err != nil {
		return nil, err
	}
	return c, nil
}

func parseBBox(s string) ([4]float64, error) {
	var v [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != len(v) {
		return v, fmt.Errorf("%w: bbox needs 4 values, got %d", trackheat.ErrInvalidInput, len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("%w: bbox: %w", trackheat.ErrInvalidInput, err)
		}
		v[i] = f
	}
	return v, nil
}

// Heatmap handles GET /api/v1/heatmap.
func (h *Handler) Heatmap(c *gin.Context) {
	h.serveHeatmap(c, "")
}

// HeatmapPNG handles GET /api/v1/heatmap.png.
func (h *Handler) HeatmapPNG(c *gin.Context) {
	h.serveHeatmap(c, trackheat.FormatPNG)
}

func (h *Handler) serveHeatmap(c *gin.Context, forced trackheat.Format) {
	var q HeatmapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("%w: %w", trackheat.ErrInvalidInput, err))
		return
	}

	format := forced
	if format == "" {
		format = trackheat.FormatPNG
		if q.Format != "" {
			f, err := trackheat.ParseFormat(q.Format)
			if err != nil {
				fail(c, http.StatusBadRequest, err)
				return
			}
			format = f
		}
	}

	ctx := c.Request.Context()
	res, err := h.tracks.Load(ctx)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}

	points := res.Points
	cons, err := q.constraints()
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	if cons != nil {
		points = cons.Apply(points)
	}
	if len(points) == 0 {
		fail(c, http.StatusNotFound, fmt.Errorf("no track points match the request"))
		return
	}

	cfg := q.apply(h.render)
	pm, frame, err := trackheat.RenderGeoContext(ctx, points, cfg)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	if q.Scale > 0 {
		if pm, err = pm.ScaleWithin(q.Scale, cfg.MaxPixels); err != nil {
			fail(c, statusFor(err), err)
			return
		}
	}

	var buf bytes.Buffer
	if err := pm.Encode(&buf, format); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("X-Trackheat-Points", strconv.Itoa(len(frame.Points)))
	c.Header("X-Trackheat-Zoom", strconv.Itoa(frame.Zoom))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Summary describes the loaded tracks.
type Summary struct {
	Files      int               `json:"files"`
	Parsed     int               `json:"parsed"`
	Cached     int               `json:"cached"`
	Failed     int               `json:"failed"`
	Points     int               `json:"points"`
	First      *time.Time        `json:"first,omitempty"`
	Last       *time.Time        `json:"last,omitempty"`
	Bounds     *[4]float64       `json:"bounds,omitempty"`
	DistanceKM float64           `json:"distance_km"`
	Cache      *cache.Stats      `json:"cache,omitempty"`
	Store      *track.StoreStats `json:"store,omitempty"`
}

// Summarize computes the Summary of res. Distance sums consecutive
// points in time order, so it includes jumps between separate tracks.
func Summarize(res *track.Result) Summary {
	s := Summary{
		Files:  res.Files,
		Parsed: res.Parsed,
		Cached: res.Cached,
		Failed: res.Failed,
		Points: len(res.Points),
	}
	if len(res.Points) == 0 {
		return s
	}

	first, last := res.Points[0].Time, res.Points[len(res.Points)-1].Time
	s.First, s.Last = &first, &last

	b := [4]float64{res.Points[0].Lat, res.Points[0].Lon, res.Points[0].Lat, res.Points[0].Lon}
	var meters float64
	for i, p := range res.Points {
		b[0], b[1] = min(b[0], p.Lat), min(b[1], p.Lon)
		b[2], b[3] = max(b[2], p.Lat), max(b[3], p.Lon)
		if i > 0 {
			meters += res.Points[i-1].DistanceTo(p)
		}
	}
	s.Bounds = &b
	s.DistanceKM = meters / 1000
	return s
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.tracks.Load(ctx)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	s := Summarize(res)
	if cs, ok := h.tracks.(cacheStatser); ok {
		st := cs.CacheStats()
		s.Cache = &st
	}
	if ss, ok := h.tracks.(storeStatser); ok {
		st, err := ss.StoreStats(ctx)
		if err != nil {
			fail(c, statusFor(err), err)
			return
		}
		s.Store = &st
	}
	success(c, s)
}
