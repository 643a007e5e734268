// Package services – SuggestService
//
// This file implements query completion: a short query is answered with an
// empty list without touching the database; otherwise a bounded set of
// in-stock candidates is fetched and turned into suggestions, with results
// cached per lowercased query and limit.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/cache"
	"github.com/tbourn/go-storefront-search/internal/search"
)

// Suggestion defaults and bounds.
const (
	DefaultSuggestLimit   = 5
	MaxSuggestLimit       = 20
	DefaultCandidateLimit = 50
)

// Values of SuggestResult.Source.
const (
	SourceCache = "cache"
	SourceFresh = "fresh"
)

// SuggestResult is the response body of a suggestion lookup.
type SuggestResult struct {
	Suggestions []string  `json:"suggestions"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

// SuggestionCacheKey builds the cache key for a suggestion lookup from the
// lowercased, trimmed query and the limit.
func SuggestionCacheKey(q string, limit int) string {
	return "q=" + strconv.Quote(strings.ToLower(strings.TrimSpace(q))) + "|limit=" + strconv.Itoa(limit)
}

// SuggestService answers suggestion lookups.
type SuggestService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the catalog repository used by this service.
	Repo ProductRepo
	// Cache holds recent suggestion lists.
	Cache *cache.Cache[[]string]
	// Suggester capitalizes suggestions using its locale.
	Suggester search.Suggester
	// CandidateLimit caps how many products feed one lookup.
	CandidateLimit int
	// DefaultLimit replaces a non-positive limit; MaxLimit caps it.
	DefaultLimit int
	MaxLimit     int

	now func() time.Time
	sf  singleflight.Group
}

// NewSuggestService constructs a SuggestService. A nil cache gets a private
// default one.
func NewSuggestService(db *gorm.DB, r ProductRepo, c *cache.Cache[[]string], sg search.Suggester, candidateLimit int) *SuggestService {
	if c == nil {
		c = cache.New[[]string]("suggestions", cache.WithTTL(300*time.Second))
	}
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	return &SuggestService{
		DB:             db,
		Repo:           r,
		Cache:          c,
		Suggester:      sg,
		CandidateLimit: candidateLimit,
		DefaultLimit:   DefaultSuggestLimit,
		MaxLimit:       MaxSuggestLimit,
		now:            time.Now,
	}
}

// ClampSuggestLimit maps limit into [1, MaxSuggestLimit]; non-positive
// values become DefaultSuggestLimit.
func ClampSuggestLimit(limit int) int {
	return clampLimit(limit, DefaultSuggestLimit, MaxSuggestLimit)
}

func clampLimit(limit, def, hi int) int {
	if def > hi {
		def = hi
	}
	switch {
	case limit <= 0:
		return def
	case limit > hi:
		return hi
	}
	return limit
}

// Suggest returns up to limit completions for q.
func (s *SuggestService) Suggest(ctx context.Context, q string, limit int) (SuggestResult, error) {
	tr := otel.Tracer("services/SuggestService")
	ctx, span := tr.Start(ctx, "Suggest",
		trace.WithAttributes(attribute.Int("suggest.limit", limit)),
	)
	defer span.End()

	q = strings.TrimSpace(q)
	limit = clampLimit(limit, s.DefaultLimit, s.MaxLimit)
	if utf8.RuneCountInString(q) < search.MinSuggestQueryRunes {
		suggestRequests.WithLabelValues("short").Inc()
		return SuggestResult{Suggestions: []string{}, Source: SourceFresh, Timestamp: s.now().UTC()}, nil
	}

	key := SuggestionCacheKey(q, limit)
	if hit, ok := s.Cache.Get(key); ok {
		suggestRequests.WithLabelValues(SourceCache).Inc()
		return SuggestResult{Suggestions: hit, Source: SourceCache, Timestamp: s.now().UTC()}, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		candidates, err := s.Repo.ListSuggestionCandidates(ctx, s.DB, q, s.CandidateLimit)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.Int("suggest.candidates", len(candidates)))
		out := s.Suggester.Suggest(candidates, q, limit)
		s.Cache.Set(key, out)
		return out, nil
	})
	if err != nil {
		span.RecordError(err)
		return SuggestResult{}, fmt.Errorf("%w: %v", ErrSuggestFailed, err)
	}
	suggestRequests.WithLabelValues(SourceFresh).Inc()
	return SuggestResult{Suggestions: v.([]string), Source: SourceFresh, Timestamp: s.now().UTC()}, nil
}
