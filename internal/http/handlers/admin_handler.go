// Admin HTTP handlers.
//
//   - DELETE /admin/search/cache
//   - GET    /admin/search/stats
//
// The router guards both routes with middleware.AdminToken when ADMIN_TOKEN
// is configured.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-storefront-search/internal/http/middleware"
)

// ClearSearchCache godoc
// @ID          clearSearchCache
// @Summary     Clear response caches
// @Description Drops every cached search and suggestion response and reports how many entries each cache held.
// @Tags        Admin
// @Produce     json
//
// @Param       X-Admin-Token  header  string  false  "Admin token (required when ADMIN_TOKEN is set)"
//
// @Success     200  {object}  services.ClearResult
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /admin/search/cache [delete]
func (h *Handlers) ClearSearchCache(c *gin.Context) {
	res := h.adminSvc.ClearCaches()
	lg := middleware.LoggerFrom(c)
	lg.Info().
		Int("search", res.Search).
		Int("suggestions", res.Suggestions).
		Msg("response caches cleared")
	ok(c, http.StatusOK, res)
}

// SearchStats godoc
// @ID          searchStats
// @Summary     Search statistics
// @Description Reports cache sizes and TTLs, the live product count, the last catalog update and the number of tracked terms.
// @Tags        Admin
// @Produce     json
//
// @Param       X-Admin-Token  header  string  false  "Admin token (required when ADMIN_TOKEN is set)"
//
// @Success     200  {object}  services.AdminStats
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Stats failed"
// @Router      /admin/search/stats [get]
func (h *Handlers) SearchStats(c *gin.Context) {
	stats, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
