// Package category serves the store's category list from the operation
// server with retry, fallback, throttling and a replay cache.
package category

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/appstore/internal/core/domain"
	"github.com/vietddude/appstore/internal/infra/operation"
	"github.com/vietddude/appstore/internal/metrics"
)

// Source fetches raw category records and resolves icon filenames.
type Source interface {
	FetchCategories(ctx context.Context) ([]domain.RawCategoryRecord, error)
	ImageURL(file string) string
}

// Snapshotter receives the resolved list once it is cached.
type Snapshotter interface {
	SaveCategories(ctx context.Context, categories []domain.Category, fallback bool) error
}

// Config tunes the provider.
type Config struct {
	ThrottleWindow time.Duration
	MaxRetries     int
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{
		ThrottleWindow: 60 * time.Second,
		MaxRetries:     operation.DefaultMaxRetries,
	}
}

// Provider exposes GetCategories. It is safe for concurrent use.
type Provider struct {
	source   Source
	cfg      Config
	throttle *Throttle
	cell     *Cell[[]domain.Category]
	log      *slog.Logger

	mu       sync.Mutex
	fallback bool
	snapshot Snapshotter
	inflight sync.WaitGroup
}

// NewProvider creates a provider reading from source.
func NewProvider(source Source, cfg Config) *Provider {
	return &Provider{
		source:   source,
		cfg:      cfg,
		throttle: NewThrottle(cfg.ThrottleWindow),
		cell:     NewCell[[]domain.Category](),
		log:      slog.Default().With("component", "category"),
	}
}

// SetSnapshotter registers a sink for the resolved list.
func (p *Provider) SetSnapshotter(s Snapshotter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = s
}

// GetCategories returns the category list. It never fails: fetch errors
// and empty responses resolve to the default list. The first resolved list
// is cached for the lifetime of the provider and shared by all callers, so
// the returned slice must not be modified.
//
// If ctx ends before the shared fetch resolves, the caller gets the default
// list while the fetch keeps running and still fills the cache.
func (p *Provider) GetCategories(ctx context.Context) []domain.Category {
	if categories, ok := p.cell.Get(); ok {
		metrics.CategoryCacheHitsTotal.Inc()
		return categories
	}

	p.trigger(ctx)

	categories, err := p.cell.Wait(ctx)
	if err != nil {
		p.log.Warn("Category wait ended before resolution, serving defaults", "error", err)
		return domain.DefaultCategories()
	}
	return categories
}

// Warm starts the fetch without waiting for it.
func (p *Provider) Warm(ctx context.Context) {
	p.trigger(ctx)
}

// Wait blocks until any in-flight fetch has finished.
func (p *Provider) Wait() {
	p.inflight.Wait()
}

// State returns the cache state.
func (p *Provider) State() CellState {
	return p.cell.State()
}

// Fallback reports whether the cached list is the default list.
func (p *Provider) Fallback() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fallback
}

// trigger is the throttled fetch entry point.
func (p *Provider) trigger(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	decision := p.throttle.Attempt()
	metrics.CategoryThrottleTotal.WithLabelValues(decision.String()).Inc()
	if decision == Suppressed {
		return
	}

	if !p.cell.Begin() {
		// already pending or resolved; the caller joins it
		return
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.fill(context.WithoutCancel(ctx))
	}()
}

func (p *Provider) fill(ctx context.Context) {
	res := p.load(ctx)
	categories, fallback := resolve(res)

	switch {
	case res.Err != nil:
		p.log.Error("Failed to fetch categories, using defaults", "error", res.Err)
		metrics.CategoryFetchesTotal.WithLabelValues("failed").Inc()
	case fallback:
		p.log.Info("Operation server returned no visible categories, using defaults")
		metrics.CategoryFetchesTotal.WithLabelValues("empty").Inc()
	default:
		p.log.Debug("Fetched categories", "count", len(categories))
		metrics.CategoryFetchesTotal.WithLabelValues("remote").Inc()
	}

	p.mu.Lock()
	p.fallback = fallback
	snapshot := p.snapshot
	p.mu.Unlock()

	if fallback {
		metrics.CategoryFallback.Set(1)
	} else {
		metrics.CategoryFallback.Set(0)
	}

	p.cell.Resolve(categories)

	if snapshot != nil {
		if err := snapshot.SaveCategories(ctx, categories, fallback); err != nil {
			p.log.Warn("Failed to save category snapshot", "error", err)
		}
	}
}

func (p *Provider) load(ctx context.Context) Result {
	records, err := operation.FetchWithRetry(ctx, p.cfg.MaxRetries, p.source.FetchCategories)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Categories: Transform(records, p.source.ImageURL)}
}
