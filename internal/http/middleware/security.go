package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// defaultExposeHeaders are readable by browser clients: the correlation ID
// and the response-cache status.
var defaultExposeHeaders = []string{"X-Request-ID", "X-Cache"}

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // defaults to 180 days
	NoStore      bool          // Cache-Control: no-store (admin responses)
	EnablePolicy bool          // Permissions-Policy and friends
	// ExposeHeaders replaces defaultExposeHeaders when non-empty.
	ExposeHeaders []string
}

// SecurityHeaders sets conservative headers for a JSON API: nosniff, frame
// denial and no referrer always; feature policies, no-store and HSTS (HTTPS
// requests only) on demand. It also appends the exposed headers to
// Access-Control-Expose-Headers without duplicating existing entries.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"
	expose := opt.ExposeHeaders
	if len(expose) == 0 {
		expose = defaultExposeHeaders
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		h.Set("Access-Control-Expose-Headers", mergeHeaderList(h.Get("Access-Control-Expose-Headers"), expose))

		c.Next()
	}
}

// mergeHeaderList appends add to the comma-separated list cur, skipping
// names already present (case-insensitive).
func mergeHeaderList(cur string, add []string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(cur, ",") {
		if p := strings.TrimSpace(part); p != "" {
			seen[strings.ToLower(p)] = struct{}{}
			out = append(out, p)
		}
	}
	for _, a := range add {
		if _, ok := seen[strings.ToLower(a)]; ok {
			continue
		}
		seen[strings.ToLower(a)] = struct{}{}
		out = append(out, a)
	}
	return strings.Join(out, ", ")
}

// isHTTPS reports a TLS connection or X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
