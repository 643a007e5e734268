package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestFail_EnvelopeAndServerErrorLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		status  int
		code    string
		wantLog bool
	}{
		{"bad request", http.StatusBadRequest, ErrCodeBadRequest, false},
		{"rate limited", http.StatusTooManyRequests, ErrCodeRateLimited, false},
		{"search failed", http.StatusInternalServerError, ErrCodeSearchFailed, true},
		{"unavailable", http.StatusServiceUnavailable, ErrCodeInternal, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			lg := zerolog.New(&buf)
			reachedNext := false

			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Writer.Header().Set("X-Request-ID", "rid-fail")
				c.Set("logger", &lg)
				c.Next()
			})
			r.GET("/x",
				func(c *gin.Context) { Fail(c, tc.status, tc.code, "something broke") },
				func(c *gin.Context) { reachedNext = true },
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tc.status {
				t.Fatalf("status=%d want %d", w.Code, tc.status)
			}
			if reachedNext {
				t.Fatalf("handler chain continued after fail")
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json: %v", err)
			}
			if resp != (ErrorResponse{RequestID: "rid-fail", Code: tc.code, Message: "something broke"}) {
				t.Fatalf("unexpected body: %+v", resp)
			}

			logged := strings.Contains(buf.String(), `"level":"error"`)
			if logged != tc.wantLog {
				t.Fatalf("error logged=%v want %v (log=%q)", logged, tc.wantLog, buf.String())
			}
			if tc.wantLog && !strings.Contains(buf.String(), `"code":"`+tc.code+`"`) {
				t.Fatalf("log misses code: %s", buf.String())
			}
		})
	}
}

func TestFail_OmitsMissingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if strings.Contains(w.Body.String(), "request_id") {
		t.Fatalf("request_id should be omitted when unset: %s", w.Body.String())
	}
}

func TestOK_WritesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) {
		ok(c, http.StatusOK, PopularResponse{Terms: nil})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type=%q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"terms":null}` {
		t.Fatalf("body=%s", got)
	}
}
