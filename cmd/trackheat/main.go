// Command trackheat renders a heatmap from a directory of GPX tracks.
//
// Usage:
//
//	trackheat [flags] [file.gpx | dir ...]
//
// Without arguments the configured input directory is scanned. With
// -serve the tracks are loaded on every request and served over HTTP
// instead of being written once.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/trackheat"
	"github.com/gogpu/trackheat/cache"
	"github.com/gogpu/trackheat/config"
	"github.com/gogpu/trackheat/internal/api"
	"github.com/gogpu/trackheat/track"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintln(os.Stderr, "trackheat:", err)
		stop()
		os.Exit(1)
	}
}

type flags struct {
	config    string
	out       string
	format    string
	scale     float64
	zoom      int
	blur      float64
	cache     string
	workers   int
	serve     bool
	addr      string
	logLevel  string
	logFormat string
	progress  bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	var f flags
	fs := flag.NewFlagSet("trackheat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.out, "out", "", "output image path")
	fs.StringVar(&f.format, "format", "", "output format: png, tiff or bmp (default from -out)")
	fs.Float64Var(&f.scale, "scale", 0, "resize factor of the written image")
	fs.IntVar(&f.zoom, "zoom", 0, "projection zoom level")
	fs.Float64Var(&f.blur, "blur", 0, "blur radius in pixels")
	fs.StringVar(&f.cache, "cache", "", "SQLite parse cache path")
	fs.IntVar(&f.workers, "workers", 0, "parallel parsers (0 = GOMAXPROCS)")
	fs.BoolVar(&f.serve, "serve", false, "serve heatmaps over HTTP")
	fs.StringVar(&f.addr, "addr", "", "listen address for -serve")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "text or json")
	fs.BoolVar(&f.progress, "progress", true, "show a progress bar while loading")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &f, fs, nil
}

// loadConfig reads the configuration file, if any, and applies the
// flags that were set explicitly.
func loadConfig(f *flags, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "out":
			cfg.Output.Path = f.out
		case "format":
			cfg.Output.Format = f.format
		case "scale":
			cfg.Output.Scale = f.scale
		case "zoom":
			cfg.Render.Zoom = f.zoom
		case "blur":
			cfg.Render.BlurRadius = f.blur
		case "cache":
			cfg.Input.CachePath = f.cache
		case "workers":
			cfg.Input.Workers = f.workers
		case "addr":
			cfg.Server.Addr = f.addr
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "log-format":
			cfg.Logging.Format = f.logFormat
		}
	})
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}

	trackheat.SetLogger(cfg.Logging.NewLogger(stderr))
	log := trackheat.Logger()

	lib := &library{input: cfg.Input, args: fs.Args()}
	opts, err := cfg.Input.LoaderOptions()
	if err != nil {
		return err
	}
	if cfg.Input.CachePath != "" {
		store, err := track.OpenStore(ctx, cfg.Input.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, track.WithStore(store))
		lib.store = store
	}

	if f.serve {
		lib.loader = track.NewLoader(opts...)
		return serve(ctx, cfg, lib)
	}

	paths, err := lib.paths()
	if err != nil {
		return err
	}
	if f.progress && len(paths) > 1 {
		bar := progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("loading tracks"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		opts = append(opts, track.WithProgress(func(done, _ int) {
			_ = bar.Set(done)
		}))
	}
	lib.loader = track.NewLoader(opts...)

	res, err := lib.loader.LoadFiles(ctx, paths)
	if err != nil {
		return err
	}
	if len(res.Points) == 0 {
		return fmt.Errorf("%w: no track points in %d files", trackheat.ErrInvalidInput, res.Files)
	}

	renderCfg := cfg.Render.RenderConfig()
	pm, frame, err := trackheat.RenderGeoContext(ctx, res.Points, renderCfg)
	if err != nil {
		return err
	}
	if pm, err = pm.ScaleWithin(cfg.Output.Scale, renderCfg.MaxPixels); err != nil {
		return err
	}
	format, err := cfg.Output.ImageFormat()
	if err != nil {
		return err
	}
	if err := pm.Save(cfg.Output.Path, format); err != nil {
		return err
	}
	log.Info("trackheat: image written", "path", cfg.Output.Path, "format", string(format),
		"width", pm.Width(), "height", pm.Height(), "zoom", frame.Zoom)

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "%d points from %d files (%d parsed, %d cached, %d failed)\n",
		len(res.Points), res.Files, res.Parsed, res.Cached, res.Failed)
	p.Fprintf(stdout, "%d x %d %s written to %s\n", pm.Width(), pm.Height(), format, cfg.Output.Path)
	return nil
}

func serve(ctx context.Context, cfg config.Config, lib *library) error {
	gin.SetMode(gin.ReleaseMode)
	h := api.NewHandler(lib, cfg.Render.RenderConfig())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		trackheat.Logger().Info("trackheat: listening", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// library resolves the input paths on every load so a running server
// picks up new files.
type library struct {
	loader *track.Loader
	store  *track.Store
	input  config.Input
	args   []string
}

func (l *library) paths() ([]string, error) {
	targets := l.args
	if len(targets) == 0 {
		targets = l.input.Files
		if l.input.Dir != "" {
			targets = append([]string{l.input.Dir}, targets...)
		}
	}

	var paths []string
	for _, t := range targets {
		info, err := os.Stat(t)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, t)
			continue
		}
		found, err := track.ListDir(t)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func (l *library) Load(ctx context.Context) (*track.Result, error) {
	paths, err := l.paths()
	if err != nil {
		return nil, err
	}
	return l.loader.LoadFiles(ctx, paths)
}

func (l *library) CacheStats() cache.Stats {
	return l.loader.CacheStats()
}

func (l *library) StoreStats(ctx context.Context) (track.StoreStats, error) {
	if l.store == nil {
		return track.StoreStats{}, nil
	}
	return l.store.Stats(ctx)
}
