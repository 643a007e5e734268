package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

const (
	// MinSuggestQueryRunes is the shortest query that yields suggestions.
	MinSuggestQueryRunes = 2
	// minSuggestWordRunes is the exclusive lower bound on a suggested word.
	minSuggestWordRunes = 3
	// minSuggestPhraseRunes is the exclusive lower bound on a suggested phrase.
	minSuggestPhraseRunes = 5
)

// Suggester generates query completions from candidate products.
// The zero value capitalizes with English rules.
type Suggester struct {
	Locale language.Tag
}

// Suggest is Suggester{}.Suggest.
func Suggest(products []domain.SearchableProduct, query string, limit int) []string {
	return Suggester{}.Suggest(products, query, limit)
}

// Suggest returns up to limit distinct completions for the partial query,
// derived only from the candidates' names and descriptions. Order is the
// order of first discovery; products are visited in input order and for each
// product the steps run in a fixed sequence:
//
//  1. the verbatim name when it contains the query;
//  2. name words (> 3 runes) that start with or fuzzy-match the query;
//  3. when the description contains the query, two-word description phrases
//     whose first word (> 3 runes) starts with or fuzzy-matches the query and
//     whose length exceeds 5 runes.
//
// Queries shorter than 2 runes (after trimming) yield an empty slice.
func (s Suggester) Suggest(products []domain.SearchableProduct, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinSuggestQueryRunes || limit <= 0 {
		return []string{}
	}

	tag := s.Locale
	if tag == language.Und {
		tag = language.English
	}
	upper := cases.Upper(tag)
	capitalize := func(w string) string {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			return w
		}
		return upper.String(string(r)) + w[size:]
	}

	set := newOrderedSet(limit)
	matches := func(w string) bool {
		return strings.HasPrefix(w, q) || FuzzyMatch(w, q, FuzzyMaxDistance)
	}

	for _, p := range products {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, q) {
			set.add(p.Name)
		}

		for _, w := range strings.Fields(name) {
			if utf8.RuneCountInString(w) <= minSuggestWordRunes {
				continue
			}
			if strings.HasPrefix(w, q) {
				set.add(capitalize(w))
			}
			if FuzzyMatch(w, q, FuzzyMaxDistance) {
				set.add(capitalize(w))
			}
		}

		desc := strings.ToLower(p.Description)
		if !strings.Contains(desc, q) {
			continue
		}
		dw := strings.Fields(desc)
		for i := 0; i+1 < len(dw); i++ {
			w := dw[i]
			if utf8.RuneCountInString(w) <= minSuggestWordRunes || !matches(w) {
				continue
			}
			phrase := w + " " + dw[i+1]
			if utf8.RuneCountInString(phrase) > minSuggestPhraseRunes {
				set.add(capitalize(phrase))
			}
		}
	}

	return set.first(limit)
}

// orderedSet is an insertion-ordered string set.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet(hint int) *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}, hint), items: make([]string, 0, hint)}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) first(n int) []string {
	if n > len(s.items) {
		n = len(s.items)
	}
	return s.items[:n]
}
