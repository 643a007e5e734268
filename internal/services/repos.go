package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/repo"
)

// ProductRepo defines the catalog queries required by SearchService and
// SuggestService.
type ProductRepo interface {
	// ListProducts returns a filtered, ordered page; limit <= 0 returns all rows.
	ListProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter, sort domain.SortKey, offset, limit int) ([]domain.SearchableProduct, error)

	// CountProducts returns the unpaginated size of a listing.
	CountProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter) (int64, error)

	// ListSuggestionCandidates returns in-stock products whose name or
	// description contains q.
	ListSuggestionCandidates(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.SearchableProduct, error)
}

// StatsRepo defines the aggregate queries required by AdminService.
type StatsRepo interface {
	CatalogStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
	SearchTermCount(ctx context.Context, db *gorm.DB) (int64, error)
}
