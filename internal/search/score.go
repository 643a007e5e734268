package search

import (
	"sort"
	"strings"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

// Scoring weights. Signals are additive and uncapped: a product that matches
// more query words, or the same word several times, ranks higher.
const (
	WeightNameExact        = 100.0
	WeightNameContains     = 50.0
	WeightNamePrefix       = 30.0
	WeightCategoryExact    = 40.0
	WeightCategoryContains = 20.0
	WeightWordExact        = 20.0
	WeightWordPrefix       = 10.0
	WeightWordFuzzy        = 5.0
	WeightDescContains     = 15.0
	WeightDescCoverage     = 10.0

	// FuzzyMaxDistance is the edit-distance budget for word-level fuzzy matches.
	FuzzyMaxDistance = 2
)

// Score returns the relevance of p for query. The result is >= 0 and depends
// only on its arguments. An empty (or whitespace-only) query scores 0.
func Score(p domain.SearchableProduct, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	category := strings.ToLower(p.Category())

	score := 0.0

	// Whole-query signals on the name.
	if name == q {
		score += WeightNameExact
	}
	if strings.Contains(name, q) {
		score += WeightNameContains
	}
	if strings.HasPrefix(name, q) {
		score += WeightNamePrefix
	}

	// Category.
	if category == q {
		score += WeightCategoryExact
	} else if strings.Contains(category, q) {
		score += WeightCategoryContains
	}

	// Word pairs: the strongest signal per (query word, name word) pair,
	// summed over all pairs.
	words := queryWords(q)
	nameWords := strings.Fields(name)
	for _, qw := range words {
		for _, nw := range nameWords {
			switch {
			case nw == qw:
				score += WeightWordExact
			case strings.HasPrefix(nw, qw):
				score += WeightWordPrefix
			case FuzzyMatch(nw, qw, FuzzyMaxDistance):
				score += WeightWordFuzzy
			}
		}
	}

	// Description.
	if strings.Contains(desc, q) {
		score += WeightDescContains
	}
	if len(words) > 0 {
		matched := 0
		seen := make(map[string]struct{}, len(words))
		for _, qw := range words {
			if _, dup := seen[qw]; dup {
				continue
			}
			seen[qw] = struct{}{}
			if strings.Contains(desc, qw) {
				matched++
			}
		}
		// Distinct matches over every qualifying query word, repeats included.
		score += float64(matched) / float64(len(words)) * WeightDescCoverage
	}

	return score
}

// ScoreAll scores every product against query and returns them ordered by
// descending score. The sort is stable, so equal scores keep the input order
// (the fetch order, typically newest first).
func ScoreAll(products []domain.SearchableProduct, query string) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, len(products))
	for i, p := range products {
		out[i] = domain.ScoredProduct{SearchableProduct: p, RelevanceScore: Score(p, query)}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].RelevanceScore > out[b].RelevanceScore
	})
	return out
}

// AttachHighlights fills the highlight spans of every product for query.
func AttachHighlights(products []domain.ScoredProduct, query string) {
	for i := range products {
		products[i].NameHighlights = Highlight(products[i].Name, query)
		products[i].DescriptionHighlights = Highlight(products[i].Description, query)
	}
}
