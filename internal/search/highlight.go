package search

import (
	"html"
	"regexp"
	"strings"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

// HighlightClass is the CSS class applied by RenderHighlights.
const HighlightClass = "search-highlight"

// Highlight returns the spans of text matched by the words of query.
//
// The query is split on whitespace and only words longer than
// MinQueryWordRunes are kept; the words are escaped and joined into one
// case-insensitive alternation. Matches follow the regex engine's
// leftmost-first semantics, so overlapping candidates are not merged.
// It returns nil when text or query is empty or no word qualifies.
func Highlight(text, query string) []domain.Span {
	if text == "" || strings.TrimSpace(query) == "" {
		return nil
	}
	re := highlightPattern(query)
	if re == nil {
		return nil
	}
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]domain.Span, 0, len(locs))
	for _, l := range locs {
		out = append(out, domain.Span{Start: l[0], End: l[1], Match: text[l[0]:l[1]]})
	}
	return out
}

// RenderHighlights HTML-escapes text and wraps each span in
// <tag class="search-highlight">. An empty tag defaults to "span". Spans must
// be sorted and non-overlapping, as returned by Highlight; invalid spans are
// skipped.
func RenderHighlights(text string, spans []domain.Span, tag string) string {
	if tag == "" {
		tag = "span"
	}
	var b strings.Builder
	b.Grow(len(text) + len(spans)*32)
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) || s.Start >= s.End {
			continue
		}
		b.WriteString(html.EscapeString(text[pos:s.Start]))
		b.WriteString("<" + tag + ` class="` + HighlightClass + `">`)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString("</" + tag + ">")
		pos = s.End
	}
	b.WriteString(html.EscapeString(text[pos:]))
	return b.String()
}

// RenderProducts returns a copy of products with NameHTML and
// DescriptionHTML rendered from their highlight spans. The input slice is not
// modified, so cached results can be passed directly.
func RenderProducts(products []domain.ScoredProduct, tag string) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, len(products))
	for i, p := range products {
		p.NameHTML = RenderHighlights(p.Name, p.NameHighlights, tag)
		p.DescriptionHTML = RenderHighlights(p.Description, p.DescriptionHighlights, tag)
		out[i] = p
	}
	return out
}

func highlightPattern(query string) *regexp.Regexp {
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = EscapeRegex(w)
	}
	re, err := regexp.Compile(`(?i)(` + strings.Join(escaped, "|") + `)`)
	if err != nil {
		return nil
	}
	return re
}
