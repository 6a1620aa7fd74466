// Package web serves the recipe directory as server-rendered HTML, a JSON
// API and Prometheus metrics.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cookanything/pantry/internal/catalog"
	"github.com/cookanything/pantry/internal/controller"
	"github.com/cookanything/pantry/internal/demo"
	"github.com/cookanything/pantry/internal/metrics"
	"github.com/cookanything/pantry/internal/recipe"
	"github.com/cookanything/pantry/internal/source"
)

// Options configure New.
type Options struct {
	Fetcher         controller.Fetcher
	PageSize        int
	ScrollThreshold int
	DemoConfig      string // file path or URL of {"demo": bool}
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	Logger          *slog.Logger
}

// Server renders pages. Every request gets its own Controller, so each page
// load performs one fetch like a browser refresh would.
type Server struct {
	opts   Options
	logger *slog.Logger
	mux    *http.ServeMux
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.PageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{opts: opts, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/recipes", s.handleRecipes)
	if opts.Gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return s
}

// Handler returns the routes wrapped in the common middleware.
func (s *Server) Handler() http.Handler {
	return withCommonHeaders(withRequestID(s.withAccessLog(s.mux)))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	active, persist := demo.Resolve(
		demo.Load(r.Context(), s.opts.DemoConfig, s.logger),
		query,
		stickyDemo(r),
	)
	if persist {
		http.SetCookie(w, &http.Cookie{
			Name:     demo.SessionKey,
			Value:    "true",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	c := controller.New(controller.Options{
		Fetcher:         s.opts.Fetcher,
		Location:        controller.ParseLocation(r.URL.RequestURI()),
		PageSize:        s.opts.PageSize,
		ScrollThreshold: s.opts.ScrollThreshold,
		Demo:            active,
		Query:           queryFrom(query),
		Logger:          s.logger,
	})
	defer c.Close()
	c.Load(r.Context())

	data := newPageData(c.View(), s.opts.ScrollThreshold)

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		s.logger.Error("render index", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

type recipesResponse struct {
	Items      []recipe.Recipe `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
	Error      string          `json:"error,omitempty"`
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	loc := controller.ParseLocation(r.URL.RequestURI())

	var n source.FailureRecorder
	var list []recipe.Recipe
	if s.opts.Fetcher != nil {
		list = s.opts.Fetcher.Fetch(r.Context(), &n)
	}

	res := catalog.Apply(list, queryFrom(query), s.opts.PageSize, loc.Page())
	items := res.Page
	if items == nil {
		items = []recipe.Recipe{}
	}
	writeJSON(w, recipesResponse{
		Items:      items,
		Page:       loc.Page(),
		TotalPages: res.Pages,
		Total:      res.Total,
		Error:      n.Message,
	})
}

// queryFrom reads the filter inputs from URL parameters. Category and search
// are compared lowercased, as the select and the search box would send them.
func queryFrom(v url.Values) catalog.Query {
	q := catalog.Query{
		Category: strings.ToLower(strings.TrimSpace(v.Get("category"))),
		Search:   strings.ToLower(v.Get("q")),
		Sort:     catalog.SortKey(v.Get("sort")),
	}
	if q.Sort == "" {
		q.Sort = catalog.SortRecent
	}
	return q
}

func stickyDemo(r *http.Request) bool {
	cookie, err := r.Cookie(demo.SessionKey)
	return err == nil && cookie.Value == "true"
}
