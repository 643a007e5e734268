// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the product listing queries consumed by
// the search and suggestion services.
//
// All listing functions project rows into domain.SearchableProduct: the
// product columns plus its category name, primary image URL, and the number
// of related order items and reviews. Soft-deleted products are excluded.
//
// Functions:
//
//   - ListProducts(ctx, db, filter, sort, offset, limit) -> []domain.SearchableProduct, error
//     Filtered, ordered listing. limit <= 0 returns every matching row.
//
//   - CountProducts(ctx, db, filter) -> int64, error
//     Number of rows ListProducts would return without pagination.
//
//   - ListSuggestionCandidates(ctx, db, q, limit) -> []domain.SearchableProduct, error
//     In-stock products whose name or description contains q.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/search"
)

// ProductFilter narrows a product listing. The price range is always
// applied; the other fields are optional.
type ProductFilter struct {
	MinPrice    float64
	MaxPrice    float64
	CategoryID  string
	Search      string
	InStockOnly bool
}

const productColumns = `p.id, p.name, p.description, p.price, p.stock, p.category_id,
	c.name AS category_name,
	(SELECT pi.url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.position ASC, pi.id ASC LIMIT 1) AS image_url,
	(SELECT COUNT(*) FROM order_items oi WHERE oi.product_id = p.id) AS order_item_count,
	(SELECT COUNT(*) FROM reviews r WHERE r.product_id = p.id) AS review_count,
	p.created_at`

// textMatchClause matches one LIKE pattern against name, description and
// category name, folded with fold_lower so non-ASCII letters compare
// case-insensitively.
const textMatchClause = `(fold_lower(p.name) LIKE ? ESCAPE '\' OR fold_lower(p.description) LIKE ? ESCAPE '\' OR fold_lower(COALESCE(c.name, '')) LIKE ? ESCAPE '\')`

// baseProducts returns a fresh query over live products joined to their
// category. Each finisher must start from its own baseProducts call.
func baseProducts(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("products AS p").
		Joins("LEFT JOIN categories AS c ON c.id = p.category_id AND c.deleted_at IS NULL").
		Where("p.deleted_at IS NULL")
}

// applyFilter adds the price, category, stock and free-text predicates.
//
// Free text matches as a whole phrase across the three fields. When the
// query holds more than one word longer than two runes, every such word must
// additionally match at least one field.
func applyFilter(q *gorm.DB, f ProductFilter) *gorm.DB {
	q = q.Where("p.price BETWEEN ? AND ?", f.MinPrice, f.MaxPrice)
	if f.CategoryID != "" {
		q = q.Where("p.category_id = ?", f.CategoryID)
	}
	if f.InStockOnly {
		q = q.Where("p.stock > 0")
	}
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return q
	}
	pat := containsPattern(term)
	q = q.Where(textMatchClause, pat, pat, pat)
	if words := search.QueryWords(term); len(words) > 1 {
		for _, w := range words {
			wp := containsPattern(w)
			q = q.Where(textMatchClause, wp, wp, wp)
		}
	}
	return q
}

// orderClause maps a sort key to SQL. Every ordering ends with p.id so pages
// are stable across requests.
func orderClause(sort domain.SortKey) string {
	switch sort {
	case domain.SortPriceAsc:
		return "p.price ASC, p.created_at DESC, p.id ASC"
	case domain.SortPriceDesc:
		return "p.price DESC, p.created_at DESC, p.id ASC"
	case domain.SortNameAsc:
		return "p.name ASC, p.id ASC"
	case domain.SortNameDesc:
		return "p.name DESC, p.id ASC"
	case domain.SortPopularity:
		return "order_item_count DESC, p.created_at DESC, p.id ASC"
	default:
		return "p.created_at DESC, p.id ASC"
	}
}

// ListProducts returns products matching f in the given order. offset and
// limit paginate; limit <= 0 disables pagination.
func ListProducts(ctx context.Context, db *gorm.DB, f ProductFilter, sort domain.SortKey, offset, limit int) ([]domain.SearchableProduct, error) {
	q := applyFilter(baseProducts(ctx, db), f).
		Select(productColumns).
		Order(orderClause(sort))
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	out := []domain.SearchableProduct{}
	err := q.Scan(&out).Error
	return out, err
}

// CountProducts returns how many products match f.
func CountProducts(ctx context.Context, db *gorm.DB, f ProductFilter) (int64, error) {
	var total int64
	err := applyFilter(baseProducts(ctx, db), f).Count(&total).Error
	return total, err
}

// ListSuggestionCandidates returns up to limit in-stock products whose name
// or description contains q (case-insensitive), newest first.
func ListSuggestionCandidates(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.SearchableProduct, error) {
	pat := containsPattern(strings.TrimSpace(q))
	out := []domain.SearchableProduct{}
	err := baseProducts(ctx, db).
		Select(productColumns).
		Where("p.stock > 0").
		Where(`(fold_lower(p.name) LIKE ? ESCAPE '\' OR fold_lower(p.description) LIKE ? ESCAPE '\')`, pat, pat).
		Order(orderClause(domain.SortNewest)).
		Limit(limit).
		Scan(&out).Error
	return out, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lowercases s, escapes LIKE wildcards and wraps it in %...%.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
