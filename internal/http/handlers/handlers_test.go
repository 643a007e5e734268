package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/services"
)

// ---------- service stubs ----------

type stubSearchSvc struct {
	mu     sync.Mutex
	calls  []services.SearchParams
	res    services.SearchResult
	cached bool
	err    error
}

func (s *stubSearchSvc) Search(_ context.Context, p services.SearchParams) (services.SearchResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, p)
	return s.res, s.cached, s.err
}

type stubSuggestSvc struct {
	q     string
	limit int
	calls int
	res   services.SuggestResult
	err   error
}

func (s *stubSuggestSvc) Suggest(_ context.Context, q string, limit int) (services.SuggestResult, error) {
	s.calls++
	s.q, s.limit = q, limit
	return s.res, s.err
}

type stubAdminSvc struct {
	cleared int
	stats   services.AdminStats
	err     error
}

func (s *stubAdminSvc) ClearCaches() services.ClearResult {
	s.cleared++
	return services.ClearResult{Search: 3, Suggestions: 1}
}

func (s *stubAdminSvc) Stats(context.Context) (services.AdminStats, error) {
	return s.stats, s.err
}

type stubRanker struct {
	limit int
	terms []domain.SearchTerm
	err   error
}

func (s *stubRanker) Top(_ context.Context, limit int) ([]domain.SearchTerm, error) {
	s.limit = limit
	return s.terms, s.err
}

// ---------- router helper ----------

type stubs struct {
	search  *stubSearchSvc
	suggest *stubSuggestSvc
	admin   *stubAdminSvc
	ranker  *stubRanker
}

func newTestRouter(opts Options) (*gin.Engine, *stubs) {
	gin.SetMode(gin.TestMode)
	st := &stubs{
		search:  &stubSearchSvc{},
		suggest: &stubSuggestSvc{},
		admin:   &stubAdminSvc{},
		ranker:  &stubRanker{},
	}
	h := New(st.search, st.suggest, st.admin, st.ranker, opts)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-test")
		c.Next()
	})
	r.GET("/products/search", h.SearchProducts)
	r.GET("/products/suggestions", h.Suggestions)
	r.GET("/search/popular", h.PopularSearches)
	r.DELETE("/admin/search/cache", h.ClearSearchCache)
	r.GET("/admin/search/stats", h.SearchStats)
	return r, st
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v; body=%s", err, w.Body.String())
	}
	if er.RequestID != "rid-test" {
		t.Fatalf("request id not echoed: %+v", er)
	}
	return er
}

func TestNew_DefaultOptions(t *testing.T) {
	h := New(nil, nil, nil, nil, Options{})
	if h.opts.SearchDefaults != services.DefaultSearchParams() {
		t.Fatalf("search defaults = %+v", h.opts.SearchDefaults)
	}
	if h.opts.PopularLimit != defaultPopularLimit {
		t.Fatalf("popular limit = %d", h.opts.PopularLimit)
	}
}
