package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

// IncrementSearchTerm upserts term and bumps its counter by one. The term is
// trimmed and lowercased; empty terms are ignored.
func IncrementSearchTerm(ctx context.Context, db *gorm.DB, term string, at time.Time) error {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	row := &domain.SearchTerm{Term: term, Count: 1, LastSearchedAt: at.UTC()}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "term"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":            gorm.Expr("search_terms.count + 1"),
			"last_searched_at": at.UTC(),
		}),
	}).Create(row).Error
}

// TopSearchTerms returns the limit most searched terms, most frequent first.
// Ties are ordered alphabetically.
func TopSearchTerms(ctx context.Context, db *gorm.DB, limit int) ([]domain.SearchTerm, error) {
	out := []domain.SearchTerm{}
	err := db.WithContext(ctx).
		Order("count DESC, term ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
