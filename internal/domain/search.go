package domain

import "time"

// SearchableProduct is the read-only projection of a product consumed by the
// search core. It is populated by the repository listing query and is never
// persisted directly.
//
// CategoryName is nil for uncategorized products; ImageURL is the primary
// image (lowest position) when one exists.
type SearchableProduct struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Stock          int       `json:"stock"`
	CategoryID     *string   `json:"categoryId"`
	CategoryName   *string   `json:"categoryName"`
	ImageURL       *string   `json:"imageUrl"`
	OrderItemCount int64     `json:"orderItemCount"`
	ReviewCount    int64     `json:"reviewCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Category returns the category name or "" when the product has none.
func (p SearchableProduct) Category() string {
	if p.CategoryName == nil {
		return ""
	}
	return *p.CategoryName
}

// Span marks one highlighted match inside a text as byte offsets
// [Start, End) plus the matched substring.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Match string `json:"match"`
}

// ScoredProduct is a SearchableProduct annotated with its relevance score and,
// when requested, highlight spans for name and description. NameHTML and
// DescriptionHTML carry the escaped, tag-wrapped rendering of those spans and
// are only set for clients that ask for markup.
type ScoredProduct struct {
	SearchableProduct

	RelevanceScore        float64 `json:"relevanceScore"`
	NameHighlights        []Span  `json:"nameHighlights,omitempty"`
	DescriptionHighlights []Span  `json:"descriptionHighlights,omitempty"`
	NameHTML              string  `json:"nameHtml,omitempty"`
	DescriptionHTML       string  `json:"descriptionHtml,omitempty"`
}

// SortKey names an explicit ordering requested by a client. The zero value
// means "no explicit sort": relevance when a search term is present,
// otherwise newest first.
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortPopularity SortKey = "popularity"
	SortNewest     SortKey = "newest"
)

// Valid reports whether k is SortNone or one of the known keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortPopularity, SortNewest:
		return true
	}
	return false
}
