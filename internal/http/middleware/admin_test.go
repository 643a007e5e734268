package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/admin", AdminToken(token))
	g.GET("/stats", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestAdminToken_Disabled(t *testing.T) {
	r := adminRouter("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("empty token should allow all, got %d", w.Code)
	}
}

func TestAdminToken_Enforced(t *testing.T) {
	r := adminRouter("s3cret")

	cases := map[string]int{
		"":        http.StatusUnauthorized,
		"wrong":   http.StatusUnauthorized,
		"s3cre":   http.StatusUnauthorized,
		"s3cret":  http.StatusOK,
		"s3cret ": http.StatusUnauthorized,
	}
	for tok, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		if tok != "" {
			req.Header.Set(HeaderAdminToken, tok)
		}
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("token %q: status=%d want %d", tok, w.Code, want)
		}
		if want == http.StatusUnauthorized {
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["code"] != "unauthorized" {
				t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
			}
		}
	}
}
