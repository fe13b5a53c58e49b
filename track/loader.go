package track

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gogpu/trackheat"
	"github.com/gogpu/trackheat/cache"
	"github.com/gogpu/trackheat/internal/parallel"
)

// Source tells where LoadFile found a file's points.
type Source uint8

// Point sources, cheapest first.
const (
	SourceMemory Source = iota
	SourceStore
	SourceParsed
)

// String returns the source name used in logs.
func (s Source) String() string {
	switch s {
	case SourceMemory:
		return "memory"
	case SourceStore:
		return "store"
	case SourceParsed:
		return "parsed"
	default:
		return "unknown"
	}
}

// Loader reads GPX files into time-ordered point sequences.
// A Loader is safe for concurrent use.
type Loader struct {
	cache       *cache.Cache[[]trackheat.GeoPoint]
	store       *Store
	constraints *Constraints
	workers     int
	dwellSpeed  float64
	progress    func(done, total int)
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache shares an in-memory parse cache between loaders.
func WithCache(c *cache.Cache[[]trackheat.GeoPoint]) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithStore persists parse results across runs.
func WithStore(s *Store) Option {
	return func(l *Loader) {
		l.store = s
	}
}

// WithConstraints filters the points LoadDir and LoadFiles return.
func WithConstraints(c *Constraints) Option {
	return func(l *Loader) {
		l.constraints = c
	}
}

// WithWorkers sets the number of files parsed concurrently.
// 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		l.workers = n
	}
}

// WithDwellSpeed sets the dwell filter threshold in m/s. 0 disables it.
func WithDwellSpeed(mps float64) Option {
	return func(l *Loader) {
		l.dwellSpeed = mps
	}
}

// WithProgress registers fn to be called after every file of a
// directory load. fn may be called from several goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(l *Loader) {
		l.progress = fn
	}
}

// NewLoader returns a loader with a private cache and the default
// dwell threshold.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{dwellSpeed: DefaultDwellSpeed}
	for _, opt := range opts {
		opt(l)
	}
	if l.cache == nil {
		l.cache = cache.New[[]trackheat.GeoPoint](0)
	}
	return l
}

// CacheStats returns the statistics of the in-memory cache.
func (l *Loader) CacheStats() cache.Stats {
	return l.cache.Stats()
}

// LoadFile returns the dwell-filtered points of one GPX file, in file
// order. The returned slice is shared with the cache and must not be
// modified.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]trackheat.GeoPoint, Source, error) {
	key, err := cache.Key(path)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(key)
	if err != nil {
		return nil, 0, fmt.Errorf("track: read %s: %w", path, err)
	}
	digest := cache.Digest(data)

	if points, ok := l.cache.Lookup(key, digest); ok {
		return points, SourceMemory, nil
	}

	if l.store != nil {
		points, ok, err := l.store.Load(ctx, key, digest)
		if err != nil {
			trackheat.Logger().Warn("track: store lookup failed", "path", key, "err", err)
		} else if ok {
			l.cache.Store(key, digest, points)
			return points, SourceStore, nil
		}
	}

	points, untimed, err := ParseBytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("track: %s: %w", path, err)
	}
	if untimed > 0 {
		trackheat.Logger().Warn("track: points without timestamp skipped", "path", key, "count", untimed)
	}
	if l.dwellSpeed > 0 {
		points = FilterDwell(points, l.dwellSpeed)
	}

	l.cache.Store(key, digest, points)
	if l.store != nil {
		if err := l.store.Save(ctx, key, digest, points); err != nil {
			trackheat.Logger().Warn("track: cache write failed", "path", key, "err", err)
		}
	}
	return points, SourceParsed, nil
}

// Result is the outcome of a multi-file load.
type Result struct {
	// Points from all files, sorted by time and constrained.
	Points []trackheat.GeoPoint

	// Files is the number of files considered.
	Files int

	// Parsed, Cached and Failed count files by outcome. Cached covers
	// both the memory cache and the store.
	Parsed, Cached, Failed int
}

// LoadDir loads every .gpx file directly inside dir. Subdirectories are
// not visited. Files that cannot be read or parsed are logged and
// counted in Result.Failed.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Result, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	return l.LoadFiles(ctx, paths)
}

// ListDir returns the .gpx files directly inside dir in name order.
// The extension match is case-insensitive.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("track: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".gpx") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

type fileResult struct {
	points []trackheat.GeoPoint
	source Source
	err    error
}

// LoadFiles loads the given files concurrently and merges them.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (*Result, error) {
	log := trackheat.Logger()
	start := time.Now()

	pool := parallel.NewPool(l.workers)
	defer pool.Close()

	var done atomic.Int64
	results, err := parallel.Map(ctx, pool, paths, func(ctx context.Context, path string) fileResult {
		points, src, err := l.LoadFile(ctx, path)
		if l.progress != nil {
			l.progress(int(done.Add(1)), len(paths))
		}
		return fileResult{points: points, source: src, err: err}
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Files: len(paths)}
	total := 0
	for _, r := range results {
		total += len(r.points)
	}
	merged := make([]trackheat.GeoPoint, 0, total)
	for i, r := range results {
		switch {
		case r.err != nil:
			res.Failed++
			log.Warn("track: file skipped", "path", paths[i], "err", r.err)
			continue
		case r.source == SourceParsed:
			res.Parsed++
		default:
			res.Cached++
		}
		merged = append(merged, r.points...)
	}

	trackheat.SortByTime(merged)
	if l.constraints != nil {
		merged = l.constraints.Apply(merged)
	}
	res.Points = slices.Clip(merged)

	log.Info("track: files loaded",
		"files", res.Files, "parsed", res.Parsed, "cached", res.Cached, "failed", res.Failed,
		"points", len(res.Points), "took", time.Since(start))
	return res, nil
}
