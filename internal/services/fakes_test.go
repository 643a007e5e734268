package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/repo"
)

// ----- Fake product repo -----

type listCall struct {
	filter repo.ProductFilter
	sort   domain.SortKey
	offset int
	limit  int
}

type fakeProductRepo struct {
	mu sync.Mutex

	products []domain.SearchableProduct
	total    int64
	err      error

	// gate, when set, blocks ListProducts until closed; entered is
	// signalled once per call.
	gate    chan struct{}
	entered chan struct{}

	listCalls      []listCall
	countCalls     int
	candidateCalls int
	candidateQ     string
	candidateLimit int
}

func (r *fakeProductRepo) ListProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter, sort domain.SortKey, offset, limit int) ([]domain.SearchableProduct, error) {
	r.mu.Lock()
	r.listCalls = append(r.listCalls, listCall{filter: f, sort: sort, offset: offset, limit: limit})
	gate, entered := r.gate, r.entered
	r.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.products, nil
}

func (r *fakeProductRepo) CountProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls++
	if r.err != nil {
		return 0, r.err
	}
	return r.total, nil
}

func (r *fakeProductRepo) ListSuggestionCandidates(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.SearchableProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidateCalls++
	r.candidateQ, r.candidateLimit = q, limit
	if r.err != nil {
		return nil, r.err
	}
	return r.products, nil
}

func (r *fakeProductRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listCalls)
}

// ----- Fake tracker -----

type recordingTracker struct {
	mu    sync.Mutex
	terms []string
}

func (t *recordingTracker) Track(_ context.Context, term string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.terms = append(t.terms, term)
	return nil
}

func (t *recordingTracker) Top(context.Context, int) ([]domain.SearchTerm, error) { return nil, nil }

func (t *recordingTracker) seen() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.terms...)
}

// ----- Repo shims over the real repository -----

type productRepoShim struct{}

func (productRepoShim) ListProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter, sort domain.SortKey, offset, limit int) ([]domain.SearchableProduct, error) {
	return repo.ListProducts(ctx, db, f, sort, offset, limit)
}

func (productRepoShim) CountProducts(ctx context.Context, db *gorm.DB, f repo.ProductFilter) (int64, error) {
	return repo.CountProducts(ctx, db, f)
}

func (productRepoShim) ListSuggestionCandidates(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.SearchableProduct, error) {
	return repo.ListSuggestionCandidates(ctx, db, q, limit)
}

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ----- Fixtures -----

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sp(id, name, desc string, price float64, cat *string, age time.Duration) domain.SearchableProduct {
	return domain.SearchableProduct{
		ID: id, Name: name, Description: desc, Price: price, Stock: 1,
		CategoryName: cat, CreatedAt: epoch.Add(-age),
	}
}

func productIDs(ps []domain.ScoredProduct) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
