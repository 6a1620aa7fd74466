package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/cookanything/pantry/internal/cache"
	"github.com/cookanything/pantry/internal/metrics"
	"github.com/cookanything/pantry/internal/recipe"
)

// FailureMessage is shown in place of the card grid when a fetch fails.
const FailureMessage = "⚠️ Could not load recipes. Please refresh or try again later."

// Notifier receives loading and failure signals during a fetch.
type Notifier interface {
	Loading(active bool)
	Failed(message string)
}

// FailureRecorder is a Notifier for one-shot fetches. It ignores loading
// signals and keeps the failure message, if any.
type FailureRecorder struct {
	Message string
}

func (r *FailureRecorder) Loading(bool)          {}
func (r *FailureRecorder) Failed(message string) { r.Message = message }

// Fetcher runs the cache check, network fetch, normalization and cache write.
type Fetcher struct {
	source  RecordSource
	cache   cache.Store
	baseURL string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// FetcherOptions configure NewFetcher. Cache and Logger may be nil.
type FetcherOptions struct {
	Source  RecordSource
	Cache   cache.Store
	BaseURL string
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewFetcher builds a Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	store := opts.Cache
	if store == nil {
		store = cache.Discard{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source:  opts.Source,
		cache:   store,
		baseURL: recipe.BaseURL(opts.BaseURL),
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// Fetch returns the recipe list. It never fails: on error the notifier gets
// FailureMessage and the result is an empty list.
func (f *Fetcher) Fetch(ctx context.Context, n Notifier) []recipe.Recipe {
	if n == nil {
		n = nopNotifier{}
	}
	n.Loading(true)
	defer n.Loading(false)

	if cached, ok := f.cache.Get(); ok {
		f.metrics.ObserveCache(true)
		f.metrics.ObserveFetch("cache", 0)
		f.logger.Debug("recipes served from cache", "count", len(cached))
		return cached
	}
	f.metrics.ObserveCache(false)

	started := time.Now()
	records, err := f.fetchRecords(ctx)
	if err != nil {
		f.metrics.ObserveFetch("error", time.Since(started))
		f.logger.Error("failed to load recipes", "error", err)
		n.Failed(FailureMessage)
		return []recipe.Recipe{}
	}
	f.metrics.ObserveFetch("ok", time.Since(started))

	list := recipe.NormalizeAll(records, f.baseURL)
	f.cache.Put(list)
	f.logger.Info("recipes loaded", "count", len(list), "elapsed", time.Since(started).Round(time.Millisecond))
	return list
}

func (f *Fetcher) fetchRecords(ctx context.Context) ([]recipe.Raw, error) {
	if f.source == nil {
		return nil, ErrNoEndpoint
	}
	return f.source.FetchRecords(ctx)
}

type nopNotifier struct{}

func (nopNotifier) Loading(bool)  {}
func (nopNotifier) Failed(string) {}
