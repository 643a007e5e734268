// Package search implements the in-process product relevance ranking used by
// the storefront search and suggestion endpoints. Everything here is pure:
//
//   - No logging and no I/O (callers fetch candidates and decide what to log)
//   - Deterministic scoring: a score depends only on (product, query)
//   - Total over its domain: empty strings and missing fields never panic
//
// The building blocks are small text primitives (regex escaping, match-span
// highlighting, Levenshtein distance, fuzzy matching) shared by the relevance
// scorer (Score) and the suggestion generator (Suggest).
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinQueryWordRunes is the exclusive lower bound on query word length: only
// words with more runes than this take part in word-level matching and
// highlighting.
const MinQueryWordRunes = 2

// EscapeRegex escapes every regular-expression metacharacter in s so that the
// result, embedded in a pattern, matches the literal input only.
func EscapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// LevenshteinDistance returns the edit distance between a and b using the
// classic O(|a|·|b|) dynamic program over runes. Comparison is case-sensitive;
// lowercase both sides first for case-insensitive use.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			dp[i][j] = min3(
				dp[i-1][j]+1,      // deletion
				dp[i][j-1]+1,      // insertion
				dp[i-1][j-1]+cost, // substitution
			)
		}
	}
	return dp[la][lb]
}

// FuzzyMatch reports whether a and b are within maxDistance edits.
//
// Edit distance is meaningless on very short strings, so when either side has
// fewer than 3 runes the check degrades to a prefix test in both directions.
func FuzzyMatch(a, b string, maxDistance int) bool {
	if utf8.RuneCountInString(a) < 3 || utf8.RuneCountInString(b) < 3 {
		return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
	}
	return LevenshteinDistance(a, b) <= maxDistance
}

// queryWords lowercases q, splits it on whitespace and keeps words longer
// than MinQueryWordRunes, preserving order.
func queryWords(q string) []string {
	fields := strings.Fields(strings.ToLower(q))
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if utf8.RuneCountInString(w) > MinQueryWordRunes {
			out = append(out, w)
		}
	}
	return out
}

// QueryWords exposes the word split used by scoring so that the data-store
// filter applies the same multi-word rule.
func QueryWords(q string) []string { return queryWords(q) }

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
