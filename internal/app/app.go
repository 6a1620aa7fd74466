package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cookanything/pantry/internal/cache"
	"github.com/cookanything/pantry/internal/catalog"
	"github.com/cookanything/pantry/internal/config"
	"github.com/cookanything/pantry/internal/controller"
	"github.com/cookanything/pantry/internal/demo"
	"github.com/cookanything/pantry/internal/export"
	"github.com/cookanything/pantry/internal/logtail"
	"github.com/cookanything/pantry/internal/metrics"
	"github.com/cookanything/pantry/internal/prefs"
	"github.com/cookanything/pantry/internal/source"
	"github.com/cookanything/pantry/internal/ui"
	"github.com/cookanything/pantry/internal/web"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Options configure every pantry command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the default prefs path
	SourceURL  string // overrides source.url
	Stderr     io.Writer
}

// env holds the dependencies shared by the commands.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	store    cache.Store
	fetcher  *source.Fetcher
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	closers  []func() error
}

// setup loads the config and wires cache, source and metrics. logFile sends
// logs to the configured file instead of stderr.
func setup(opts Options, logFile bool) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if u := strings.TrimSpace(opts.SourceURL); u != "" {
		cfg.SourceURL = u
	}

	e := &env{cfg: cfg}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if logFile {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f.Close)
		e.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	} else {
		e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}

	e.registry = prometheus.NewRegistry()
	e.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	e.metrics = metrics.New(e.registry)

	store, err := cache.Open(cache.Options{
		Backend: cfg.CacheBackend,
		Dir:     cfg.CacheDir,
		Policy:  cache.Policy{ReadEnabled: cfg.CacheReadEnabled, TTL: cfg.CacheTTL},
		Logger:  e.logger,
	})
	if err != nil {
		e.logger.Warn("cache unavailable, continuing without it", "backend", cfg.CacheBackend, "error", err)
		store = cache.Discard{}
	}
	e.store = store
	e.closers = append(e.closers, store.Close)

	var src source.RecordSource
	client, err := source.NewClient(cfg.SourceURL, source.ClientOptions{
		Timeout:   cfg.Timeout,
		UserAgent: "pantry/" + Version,
	})
	if err != nil {
		e.logger.Warn("recipe source unavailable", "url", cfg.SourceURL, "error", err)
		src = source.Unavailable(err)
	} else {
		src = client
	}

	e.fetcher = source.NewFetcher(source.FetcherOptions{
		Source:  src,
		Cache:   store,
		BaseURL: cfg.BaseURL,
		Logger:  e.logger,
		Metrics: e.metrics,
	})
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// TUIOptions configure Run.
type TUIOptions struct {
	Page int  // starting page; zero means 1
	Demo bool // force the demo banner
}

// Run boots the terminal browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options, tui TUIOptions) error {
	e, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer e.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	loc := controller.ParseLocation(startLocation(tui))
	active, _ := demo.Resolve(demo.Load(ctx, e.cfg.DemoConfig, e.logger), loc.Query(), false)

	c := controller.New(controller.Options{
		Fetcher:         e.fetcher,
		Location:        loc,
		PageSize:        e.cfg.PageSize,
		Debounce:        e.cfg.Debounce,
		ScrollThreshold: e.cfg.ScrollThreshold,
		Demo:            active,
		Logger:          e.logger,
	})

	e.logger.Info("starting tui", "version", Version, "source", e.cfg.SourceURL, "page", loc.Page())
	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: c,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  prefsPath,
		Logger:     e.logger,
	})
}

func startLocation(tui TUIOptions) string {
	q := url.Values{}
	if tui.Page > 0 {
		q.Set("page", strconv.Itoa(tui.Page))
	}
	if tui.Demo {
		q.Set(demo.QueryParam, "true")
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// ServeOptions configure Serve.
type ServeOptions struct {
	Listen string // overrides server.listen
}

// Serve runs the HTML server until ctx is cancelled.
func Serve(ctx context.Context, opts Options, serve ServeOptions) error {
	e, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer e.Close()

	addr := e.cfg.Listen
	if serve.Listen != "" {
		addr = serve.Listen
	}

	s := web.New(web.Options{
		Fetcher:         e.fetcher,
		PageSize:        e.cfg.PageSize,
		ScrollThreshold: e.cfg.ScrollThreshold,
		DemoConfig:      e.cfg.DemoConfig,
		Metrics:         e.metrics,
		Gatherer:        e.registry,
		Logger:          e.logger,
	})
	return s.ListenAndServe(ctx, addr)
}

// ErrFetch is returned by Export when the recipe list could not be loaded.
var ErrFetch = errors.New("could not load recipes")

// ExportOptions configure Export.
type ExportOptions struct {
	Out      string
	Category string
	Search   string
	Sort     string
}

// Export writes the filtered, sorted list to a CSV or XLSX file and returns
// the number of rows written.
func Export(ctx context.Context, opts Options, exp ExportOptions) (int, error) {
	e, err := setup(opts, false)
	if err != nil {
		return 0, err
	}
	defer e.Close()

	var n source.FailureRecorder
	list := e.fetcher.Fetch(ctx, &n)
	if n.Message != "" {
		return 0, ErrFetch
	}

	sortKey := catalog.SortKey(strings.ToLower(strings.TrimSpace(exp.Sort)))
	if sortKey == "" {
		sortKey = catalog.SortRecent
	}
	rows := catalog.Sort(catalog.Filter(list, exp.Category, exp.Search), sortKey)
	if err := export.File(exp.Out, rows); err != nil {
		return 0, err
	}
	e.logger.Info("exported recipes", "path", exp.Out, "rows", len(rows))
	return len(rows), nil
}

// LogsOptions configure Logs.
type LogsOptions struct {
	Lines int
	Level string // minimum level, e.g. "warn"; empty shows everything
	Color bool
}

// Logs prints the tail of the log file to w.
func Logs(opts Options, logs LogsOptions, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	minLevel := slog.LevelDebug
	if lvl := strings.TrimSpace(logs.Level); lvl != "" {
		if err := minLevel.UnmarshalText([]byte(lvl)); err != nil {
			return fmt.Errorf("level %q: %w", lvl, err)
		}
	}
	n := logs.Lines
	if n <= 0 {
		n = 200
	}

	lines, err := logtail.Read(cfg.LogFile, n, minLevel)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if logs.Color {
			line = logtail.Colorize(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
