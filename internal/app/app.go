// Package app is the composition root: it turns a Config and a database
// handle into the wired search, suggestion and admin services shared by the
// HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/cache"
	"github.com/tbourn/go-storefront-search/internal/config"
	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/repo"
	"github.com/tbourn/go-storefront-search/internal/search"
	"github.com/tbourn/go-storefront-search/internal/services"
	"github.com/tbourn/go-storefront-search/internal/tracking"
)

// productRepoShim adapts the repo free functions to services.ProductRepo.
type productRepoShim struct{}

func (productRepoShim) ListProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter, sort domain.SortKey, offset, limit int) ([]domain.SearchableProduct, error) {
	return repo.ListProducts(ctx, db, f, sort, offset, limit)
}

func (productRepoShim) CountProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter) (int64, error) {
	return repo.CountProducts(ctx, db, f)
}

func (productRepoShim) ListSuggestionCandidates(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.SearchableProduct, error) {
	return repo.ListSuggestionCandidates(ctx, db, q, limit)
}

// statsRepoShim adapts the repo free functions to services.StatsRepo.
type statsRepoShim struct{}

func (statsRepoShim) CatalogStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.CatalogStats(ctx, db)
}

func (statsRepoShim) SearchTermCount(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.SearchTermCount(ctx, db)
}

// App holds the wired services.
type App struct {
	DB      *gorm.DB
	Search  *services.SearchService
	Suggest *services.SuggestService
	Admin   *services.AdminService
	// Tracker backs both background term recording and the popular list.
	Tracker    tracking.Tracker
	Dispatcher *tracking.Dispatcher
	// SearchDefaults are the parameters of a request with no query string.
	SearchDefaults services.SearchParams

	closeTracker func() error
}

// New wires services from cfg. The tracker backend is selected by
// cfg.Tracking.Backend; a Redis tracker that cannot be reached fails here.
func New(cfg config.Config, db *gorm.DB) (*App, error) {
	locale, err := language.Parse(cfg.Search.SuggestLocale)
	if err != nil {
		return nil, fmt.Errorf("SUGGEST_LOCALE %q: %w", cfg.Search.SuggestLocale, err)
	}

	tracker, closeTracker, err := tracking.FromConfig(cfg, db)
	if err != nil {
		return nil, fmt.Errorf("tracker %s: %w", cfg.Tracking.Backend, err)
	}
	dispatcher := tracking.NewDispatcher(tracker, cfg.Tracking.Timeout)

	searchCache := cache.New[services.SearchResult]("search",
		cache.WithTTL(cfg.Search.CacheTTL),
		cache.WithMaxEntries(cfg.Search.CacheMaxEntries),
		cache.WithEvictCount(cfg.Search.CacheEvictCount),
	)
	suggestCache := cache.New[[]string]("suggestions",
		cache.WithTTL(cfg.Search.SuggestCacheTTL),
		cache.WithMaxEntries(cfg.Search.CacheMaxEntries),
		cache.WithEvictCount(cfg.Search.CacheEvictCount),
	)

	suggestSvc := services.NewSuggestService(db, productRepoShim{}, suggestCache,
		search.Suggester{Locale: locale}, cfg.Search.SuggestCandidates)
	suggestSvc.DefaultLimit = cfg.Search.SuggestDefaultLimit
	suggestSvc.MaxLimit = cfg.Search.SuggestMaxLimit

	defaults := services.DefaultSearchParams()
	defaults.MaxPrice = cfg.Search.DefaultMaxPrice
	defaults.Highlights = cfg.Search.HighlightsByDefault

	return &App{
		DB:             db,
		Search:         services.NewSearchService(db, productRepoShim{}, searchCache, dispatcher, cfg.Search.PerPage),
		Suggest:        suggestSvc,
		Admin:          services.NewAdminService(db, statsRepoShim{}, searchCache, suggestCache),
		Tracker:        tracker,
		Dispatcher:     dispatcher,
		SearchDefaults: defaults,
		closeTracker:   closeTracker,
	}, nil
}

// Close waits for in-flight tracking calls, then releases the tracker.
func (a *App) Close() error {
	a.Dispatcher.Wait()
	return a.closeTracker()
}
