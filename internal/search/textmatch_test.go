package search

import (
	"html"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

func TestEscapeRegex_MatchesLiteralOnly(t *testing.T) {
	in := `a.b*(c)?[d]{2}|e^$\`
	re := regexp.MustCompile("^" + EscapeRegex(in) + "$")

	assert.True(t, re.MatchString(in))
	assert.False(t, re.MatchString("axb"))
	assert.False(t, re.MatchString("a.bbb(c)[d]dd"))
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"kitten", "sitting", 3},
		{"phone", "fone", 2},
		{"A", "a", 1}, // case-sensitive
		{"café", "cafe", 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, LevenshteinDistance(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
		assert.Equalf(t, tc.want, LevenshteinDistance(tc.b, tc.a), "symmetry %q vs %q", tc.b, tc.a)
	}
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, FuzzyMatch("phone", "fone", 2))
	assert.False(t, FuzzyMatch("phone", "xyz", 2))
	assert.False(t, FuzzyMatch("phone", "fone", 1))

	// Short strings degrade to a prefix test in either direction.
	assert.True(t, FuzzyMatch("ab", "abc", 0))
	assert.True(t, FuzzyMatch("abcdef", "ab", 0))
	assert.False(t, FuzzyMatch("ab", "xb", 5))
	assert.True(t, FuzzyMatch("", "anything", 0))
}

func TestQueryWords_DropsShortWords(t *testing.T) {
	assert.Equal(t, []string{"wireless", "headphone"}, QueryWords("  Wireless of a HEADPHONE "))
	assert.Empty(t, QueryWords("an of"))
	assert.Empty(t, QueryWords(""))
}

func TestHighlight_Spans(t *testing.T) {
	text := "Wireless Headphones"
	spans := Highlight(text, "wireless ph")
	require.Len(t, spans, 1)
	assert.Equal(t, domain.Span{Start: 0, End: 8, Match: "Wireless"}, spans[0])

	spans = Highlight("Red red REd", "red")
	require.Len(t, spans, 3)
	assert.Equal(t, "REd", spans[2].Match)
	assert.Equal(t, 8, spans[2].Start)

	// Multiple distinct words are all highlighted.
	spans = Highlight("Noise cancelling wireless buds", "wireless noise")
	require.Len(t, spans, 2)
	assert.Equal(t, "Noise", spans[0].Match)
	assert.Equal(t, "wireless", spans[1].Match)
}

func TestHighlight_NoQualifyingWordsOrNoMatch(t *testing.T) {
	assert.Nil(t, Highlight("Wireless", "of a"))
	assert.Nil(t, Highlight("", "wireless"))
	assert.Nil(t, Highlight("Wireless", ""))
	assert.Nil(t, Highlight("Wireless", "   "))
	assert.Nil(t, Highlight("Leather wallet", "headphones"))
}

func TestHighlight_EscapesMetacharacters(t *testing.T) {
	spans := Highlight("I love C++ and Go", "c++")
	require.Len(t, spans, 1)
	assert.Equal(t, "C++", spans[0].Match)

	// A bare "." must not act as a wildcard.
	assert.Nil(t, Highlight("abc", "a.c"))
}

func TestRenderHighlights(t *testing.T) {
	text := `Fast <b>wireless</b> & "more"`
	spans := Highlight(text, "wireless")
	out := RenderHighlights(text, spans, "")
	assert.Equal(t, `Fast &lt;b&gt;<span class="search-highlight">wireless</span>&lt;/b&gt; &amp; &#34;more&#34;`, out)

	assert.Equal(t, html.EscapeString(text), RenderHighlights(text, nil, "mark"))

	out = RenderHighlights("abc abc", []domain.Span{{Start: 0, End: 3}, {Start: 1, End: 2}, {Start: 4, End: 99}}, "mark")
	assert.Equal(t, `<mark class="search-highlight">abc</mark> abc`, out)
}

func TestRenderProducts_CopiesAndRenders(t *testing.T) {
	in := []domain.ScoredProduct{{
		SearchableProduct: domain.SearchableProduct{Name: "Desk Lamp", Description: "A lamp & shade"},
	}}
	in[0].NameHighlights = Highlight(in[0].Name, "lamp")
	in[0].DescriptionHighlights = Highlight(in[0].Description, "lamp")

	out := RenderProducts(in, "mark")
	require.Len(t, out, 1)
	assert.Equal(t, `Desk <mark class="search-highlight">Lamp</mark>`, out[0].NameHTML)
	assert.Equal(t, `A <mark class="search-highlight">lamp</mark> &amp; shade`, out[0].DescriptionHTML)
	assert.Empty(t, in[0].NameHTML, "input must not be modified")
}
