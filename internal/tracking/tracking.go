// Package tracking records how often search terms are used and serves the
// most popular ones back.
//
// A Tracker is the storage side (database, Redis, or nothing). A Dispatcher
// runs Track calls on detached goroutines with their own timeout so the
// request that triggered them never waits on, or fails because of, the
// counter.
package tracking

import (
	"context"
	"strings"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

// Tracker increments and reads search-term counters. Terms are normalized by
// the caller-facing helpers; implementations receive lowercase, trimmed
// input.
type Tracker interface {
	Track(ctx context.Context, term string) error
	Top(ctx context.Context, limit int) ([]domain.SearchTerm, error)
}

// Normalize lowercases and trims a term. An empty result means "do not track".
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Noop discards every term.
type Noop struct{}

// Track implements Tracker.
func (Noop) Track(context.Context, string) error { return nil }

// Top implements Tracker.
func (Noop) Top(context.Context, int) ([]domain.SearchTerm, error) {
	return []domain.SearchTerm{}, nil
}
