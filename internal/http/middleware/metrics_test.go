package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersInflightAndUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/statusonly", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/products/search", func(c *gin.Context) {
		c.Header("X-Cache", c.Query("cache"))
		c.String(http.StatusOK, "{}")
	})

	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/ok", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))
	baseHit := testutil.ToFloat64(httpCacheResults.WithLabelValues("/products/search", "HIT"))
	baseMiss := testutil.ToFloat64(httpCacheResults.WithLabelValues("/products/search", "MISS"))

	for _, target := range []string{
		"/ok",
		"/does-not-exist",
		"/statusonly",
		"/products/search?cache=HIT",
		"/products/search?cache=HIT",
		"/products/search?cache=MISS",
	} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/ok", "200")); got != baseOK+1 {
		t.Fatalf("counter /ok 200 = %v; want %v", got, baseOK+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != base404+1 {
		t.Fatalf("unmatched 404 = %v; want %v", got, base404+1)
	}
	if got := testutil.ToFloat64(httpCacheResults.WithLabelValues("/products/search", "HIT")); got != baseHit+2 {
		t.Fatalf("cache HIT = %v; want %v", got, baseHit+2)
	}
	if got := testutil.ToFloat64(httpCacheResults.WithLabelValues("/products/search", "MISS")); got != baseMiss+1 {
		t.Fatalf("cache MISS = %v; want %v", got, baseMiss+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
