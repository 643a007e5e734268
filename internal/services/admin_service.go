// Package services – AdminService
//
// This file implements the operator-facing helpers: manual eviction of the
// response caches and a snapshot of cache and catalog statistics.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/cache"
)

// CacheStats describes one response cache.
type CacheStats struct {
	Entries    int    `json:"entries"`
	TTLSeconds int64  `json:"ttlSeconds"`
	Name       string `json:"name"`
}

// AdminStats is the body of the admin stats endpoint.
type AdminStats struct {
	SearchCache      CacheStats `json:"searchCache"`
	SuggestionCache  CacheStats `json:"suggestionCache"`
	Products         int64      `json:"products"`
	CatalogUpdatedAt *time.Time `json:"catalogUpdatedAt"`
	TrackedTerms     int64      `json:"trackedTerms"`
}

// ClearResult reports how many entries each cache dropped.
type ClearResult struct {
	Search      int `json:"search"`
	Suggestions int `json:"suggestions"`
}

// AdminService exposes cache maintenance and statistics.
type AdminService struct {
	DB           *gorm.DB
	Repo         StatsRepo
	SearchCache  *cache.Cache[SearchResult]
	SuggestCache *cache.Cache[[]string]
}

// NewAdminService constructs an AdminService over the caches the search and
// suggestion services use.
func NewAdminService(db *gorm.DB, r StatsRepo, sc *cache.Cache[SearchResult], gc *cache.Cache[[]string]) *AdminService {
	return &AdminService{DB: db, Repo: r, SearchCache: sc, SuggestCache: gc}
}

// ClearCaches empties both response caches.
func (a *AdminService) ClearCaches() ClearResult {
	return ClearResult{Search: a.SearchCache.Clear(), Suggestions: a.SuggestCache.Clear()}
}

// Stats returns cache sizes plus catalog and tracking aggregates.
func (a *AdminService) Stats(ctx context.Context) (AdminStats, error) {
	products, updatedAt, err := a.Repo.CatalogStats(ctx, a.DB)
	if err != nil {
		return AdminStats{}, err
	}
	terms, err := a.Repo.SearchTermCount(ctx, a.DB)
	if err != nil {
		return AdminStats{}, err
	}
	return AdminStats{
		SearchCache:      cacheStats(a.SearchCache.Name(), a.SearchCache.Len(), a.SearchCache.TTL()),
		SuggestionCache:  cacheStats(a.SuggestCache.Name(), a.SuggestCache.Len(), a.SuggestCache.TTL()),
		Products:         products,
		CatalogUpdatedAt: updatedAt,
		TrackedTerms:     terms,
	}, nil
}

func cacheStats(name string, n int, ttl time.Duration) CacheStats {
	return CacheStats{Name: name, Entries: n, TTLSeconds: int64(ttl / time.Second)}
}
