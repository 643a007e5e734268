package handlers

import (
	"context"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/services"
)

//
// Service contracts (context-aware)
//

// SearchService answers product searches.
//
// Implementations must be safe for concurrent use and honor ctx.
type SearchService interface {
	// Search validates p and returns one page of results; cached reports a
	// response-cache hit.
	Search(ctx context.Context, p services.SearchParams) (res services.SearchResult, cached bool, err error)
}

// SuggestService answers query completion lookups.
type SuggestService interface {
	Suggest(ctx context.Context, q string, limit int) (services.SuggestResult, error)
}

// AdminService exposes cache maintenance and statistics.
type AdminService interface {
	ClearCaches() services.ClearResult
	Stats(ctx context.Context) (services.AdminStats, error)
}

// TermRanker lists the most searched terms.
type TermRanker interface {
	Top(ctx context.Context, limit int) ([]domain.SearchTerm, error)
}

//
// Handler wiring
//

// Options carries request defaults taken from configuration.
type Options struct {
	// SearchDefaults fills parameters absent from the query string.
	SearchDefaults services.SearchParams
	// PopularLimit is the default size of the popular-terms list.
	PopularLimit int
}

// Handlers groups the search API endpoints.
type Handlers struct {
	searchSvc  SearchService
	suggestSvc SuggestService
	adminSvc   AdminService
	terms      TermRanker
	opts       Options
}

// New constructs Handlers bound to the given services. Zero-valued options
// fall back to services.DefaultSearchParams and a popular limit of 10.
func New(searchSvc SearchService, suggestSvc SuggestService, adminSvc AdminService, terms TermRanker, opts Options) *Handlers {
	if opts.SearchDefaults.Page == 0 {
		opts.SearchDefaults = services.DefaultSearchParams()
	}
	if opts.PopularLimit <= 0 {
		opts.PopularLimit = defaultPopularLimit
	}
	return &Handlers{
		searchSvc:  searchSvc,
		suggestSvc: suggestSvc,
		adminSvc:   adminSvc,
		terms:      terms,
		opts:       opts,
	}
}
