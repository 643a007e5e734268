package tracking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/config"
	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/repo"
)

// DBTracker keeps counters in the search_terms table.
type DBTracker struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDBTracker returns a tracker backed by db.
func NewDBTracker(db *gorm.DB) *DBTracker {
	return &DBTracker{db: db, now: time.Now}
}

// Track upserts term and adds one to its count.
func (t *DBTracker) Track(ctx context.Context, term string) error {
	return repo.IncrementSearchTerm(ctx, t.db, term, t.now())
}

// Top returns the most searched terms.
func (t *DBTracker) Top(ctx context.Context, limit int) ([]domain.SearchTerm, error) {
	return repo.TopSearchTerms(ctx, t.db, limit)
}

// FromConfig builds the tracker selected by TRACKER. The returned close
// function is never nil.
func FromConfig(cfg config.Config, db *gorm.DB) (Tracker, func() error, error) {
	switch cfg.Tracking.Backend {
	case "redis":
		rt, err := NewRedisTracker(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rt, rt.Close, nil
	case "none":
		return Noop{}, func() error { return nil }, nil
	default:
		return NewDBTracker(db), func() error { return nil }, nil
	}
}
