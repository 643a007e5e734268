package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/go-storefront-search/internal/services"
)

func TestClearSearchCache(t *testing.T) {
	r, st := newTestRouter(Options{})

	w := do(r, http.MethodDelete, "/admin/search/cache")
	if w.Code != http.StatusOK || st.admin.cleared != 1 {
		t.Fatalf("status=%d cleared=%d", w.Code, st.admin.cleared)
	}
	var body services.ClearResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Search != 3 || body.Suggestions != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestSearchStats(t *testing.T) {
	r, st := newTestRouter(Options{})
	st.admin.stats = services.AdminStats{
		SearchCache: services.CacheStats{Name: "search", Entries: 2, TTLSeconds: 60},
		Products:    42,
	}

	w := do(r, http.MethodGet, "/admin/search/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body services.AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Products != 42 || body.SearchCache.Entries != 2 || body.SearchCache.TTLSeconds != 60 {
		t.Fatalf("body = %+v", body)
	}

	st.admin.err = errors.New("no such table")
	w = do(r, http.MethodGet, "/admin/search/stats")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeError(t, w); er.Code != ErrCodeStatsFailed {
		t.Fatalf("code = %q", er.Code)
	}
}
