// Package services – SearchService
//
// This file implements the product search orchestration: parameter
// validation, response caching, request coalescing, candidate fetching,
// relevance ranking, pagination and background term tracking.
//
// Ordering rules:
//   - an explicit sort key is applied by the database;
//   - otherwise a search term ranks all matching products by relevance in
//     memory (stable, so ties stay newest first) and paginates the result;
//   - otherwise products are listed newest first.
package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/cache"
	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/repo"
	"github.com/tbourn/go-storefront-search/internal/search"
	"github.com/tbourn/go-storefront-search/internal/tracking"
)

// Defaults for search requests.
const (
	DefaultPerPage  = 12
	DefaultMaxPrice = 999999
)

// Execution modes reported to search_requests_total.
const (
	modeCache     = "cache"
	modeRelevance = "relevance"
	modeSorted    = "sorted"
	modeNewest    = "newest"
)

// SearchParams is a parsed search request.
type SearchParams struct {
	Page       int
	CategoryID string
	Search     string
	MinPrice   float64
	MaxPrice   float64
	Sort       domain.SortKey
	Highlights bool
}

// DefaultSearchParams returns the parameters of a request with no query
// string: first page, full price range, no filters.
func DefaultSearchParams() SearchParams {
	return SearchParams{Page: 1, MinPrice: 0, MaxPrice: DefaultMaxPrice}
}

// Validate checks ranges and the sort key.
func (p SearchParams) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.MinPrice < 0 || p.MaxPrice < 0 {
		return ErrNegativePrice
	}
	if p.MinPrice > p.MaxPrice {
		return ErrInvalidPriceRange
	}
	if !p.Sort.Valid() {
		return ErrInvalidSort
	}
	return nil
}

// term returns the trimmed search term.
func (p SearchParams) term() string { return strings.TrimSpace(p.Search) }

// CacheKey joins every response-affecting parameter in a fixed order.
// Strings are quoted so no value can spill into a neighbouring field, and
// floats use their shortest exact form so 50 and 50.0 collide.
func (p SearchParams) CacheKey() string {
	return "page=" + strconv.Itoa(p.Page) +
		"|category=" + strconv.Quote(p.CategoryID) +
		"|search=" + strconv.Quote(p.term()) +
		"|min=" + strconv.FormatFloat(p.MinPrice, 'f', -1, 64) +
		"|max=" + strconv.FormatFloat(p.MaxPrice, 'f', -1, 64) +
		"|sort=" + string(p.Sort) +
		"|highlights=" + strconv.FormatBool(p.Highlights)
}

// SearchResult is the response body of a product search.
type SearchResult struct {
	Products []domain.ScoredProduct `json:"products"`
	Total    int64                  `json:"total"`
	PerPage  int                    `json:"perPage"`
	Page     int                    `json:"page"`
	Query    *string                `json:"query"`
}

// SearchService answers product searches.
type SearchService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the catalog repository used by this service.
	Repo ProductRepo
	// Cache holds recent results keyed by SearchParams.CacheKey.
	Cache *cache.Cache[SearchResult]
	// Tracker records search terms in the background.
	Tracker *tracking.Dispatcher
	// PerPage is the fixed page size.
	PerPage int

	sf singleflight.Group
}

// NewSearchService constructs a SearchService. A nil cache gets a private
// default one and a nil tracker discards terms.
func NewSearchService(db *gorm.DB, r ProductRepo, c *cache.Cache[SearchResult], t *tracking.Dispatcher, perPage int) *SearchService {
	if c == nil {
		c = cache.New[SearchResult]("search")
	}
	if t == nil {
		t = tracking.NewDispatcher(tracking.Noop{}, 0)
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &SearchService{DB: db, Repo: r, Cache: c, Tracker: t, PerPage: perPage}
}

// Search validates p and returns the requested page. cached reports whether
// the result came from the response cache.
//
// Every request carrying a search term is tracked, cache hits included; the
// tracking call never blocks or fails the search.
func (s *SearchService) Search(ctx context.Context, p SearchParams) (res SearchResult, cached bool, err error) {
	tr := otel.Tracer("services/SearchService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(
			attribute.Int("search.page", p.Page),
			attribute.String("search.sort", string(p.Sort)),
			attribute.Bool("search.has_term", p.term() != ""),
		),
	)
	defer span.End()

	if err := p.Validate(); err != nil {
		return SearchResult{}, false, err
	}
	// (Page-1)*PerPage must fit in an int.
	if p.Page-1 > math.MaxInt/s.PerPage {
		return SearchResult{}, false, ErrPageTooLarge
	}
	if term := p.term(); term != "" {
		s.Tracker.Dispatch(term)
	}

	key := p.CacheKey()
	if hit, ok := s.Cache.Get(key); ok {
		searchRequests.WithLabelValues(modeCache).Inc()
		span.SetAttributes(attribute.Bool("search.cache_hit", true))
		return hit, true, nil
	}

	v, err, shared := s.sf.Do(key, func() (any, error) {
		out, mode, err := s.execute(ctx, p)
		if err != nil {
			return nil, err
		}
		s.Cache.Set(key, out)
		searchRequests.WithLabelValues(mode).Inc()
		return out, nil
	})
	if err != nil {
		span.RecordError(err)
		return SearchResult{}, false, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	span.SetAttributes(attribute.Bool("search.shared", shared))
	return v.(SearchResult), false, nil
}

// execute runs the fetch for a cache miss.
func (s *SearchService) execute(ctx context.Context, p SearchParams) (SearchResult, string, error) {
	term := p.term()
	f := repo.ProductFilter{
		MinPrice:   p.MinPrice,
		MaxPrice:   p.MaxPrice,
		CategoryID: p.CategoryID,
		Search:     term,
	}
	res := SearchResult{PerPage: s.PerPage, Page: p.Page}
	if term != "" {
		res.Query = &term
	}
	offset := (p.Page - 1) * s.PerPage

	var (
		items []domain.ScoredProduct
		mode  string
	)
	if p.Sort == domain.SortNone && term != "" {
		mode = modeRelevance
		all, err := s.Repo.ListProducts(ctx, s.DB, f, domain.SortNewest, 0, 0)
		if err != nil {
			return SearchResult{}, "", err
		}
		ranked := search.ScoreAll(all, term)
		res.Total = int64(len(ranked))
		items = pageOf(ranked, offset, s.PerPage)
	} else {
		mode = modeSorted
		sort := p.Sort
		if sort == domain.SortNone {
			mode = modeNewest
			sort = domain.SortNewest
		}
		var page []domain.SearchableProduct
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			res.Total, err = s.Repo.CountProducts(gctx, s.DB, f)
			return err
		})
		g.Go(func() error {
			var err error
			page, err = s.Repo.ListProducts(gctx, s.DB, f, sort, offset, s.PerPage)
			return err
		})
		if err := g.Wait(); err != nil {
			return SearchResult{}, "", err
		}
		items = scoreInOrder(page, term)
	}

	if p.Highlights && term != "" {
		search.AttachHighlights(items, term)
	}
	res.Products = items
	return res, mode, nil
}

// pageOf copies the [offset, offset+limit) window of ranked. Out-of-range
// windows yield an empty, non-nil slice.
func pageOf(ranked []domain.ScoredProduct, offset, limit int) []domain.ScoredProduct {
	if offset < 0 || offset >= len(ranked) {
		return []domain.ScoredProduct{}
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	out := make([]domain.ScoredProduct, end-offset)
	copy(out, ranked[offset:end])
	return out
}

// scoreInOrder wraps products without reordering them. Scores are filled in
// when a term is present so clients see relevance even under explicit sorts.
func scoreInOrder(ps []domain.SearchableProduct, term string) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, len(ps))
	for i, p := range ps {
		out[i] = domain.ScoredProduct{SearchableProduct: p}
		if term != "" {
			out[i].RelevanceScore = search.Score(p, term)
		}
	}
	return out
}
