// Suggestion and popular-term HTTP handlers.
//
//   - GET /products/suggestions
//   - GET /search/popular
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/utils"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

// PopularResponse lists the most searched terms, most frequent first.
type PopularResponse struct {
	Terms []domain.SearchTerm `json:"terms"`
}

// Suggestions godoc
// @ID          productSuggestions
// @Summary     Query suggestions
// @Description Completes a partial query from in-stock product names and descriptions. Queries shorter than two characters return an empty list.
// @Tags        Search
// @Produce     json
//
// @Param       q      query  string  false  "Partial query"           example(lap)
// @Param       limit  query  int     false  "Maximum suggestions"     minimum(1) maximum(20) default(5)
//
// @Success     200  {object}  services.SuggestResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Suggestions failed"
// @Router      /products/suggestions [get]
func (h *Handlers) Suggestions(c *gin.Context) {
	// 0 lets the service apply its configured default; clamping happens there.
	limit, err := utils.IntDefault(c.Query("limit"), 0)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "limit: "+err.Error())
		return
	}

	res, err := h.suggestSvc.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSuggestFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// PopularSearches godoc
// @ID          popularSearches
// @Summary     Popular search terms
// @Description Returns the most frequently searched terms.
// @Tags        Search
// @Produce     json
//
// @Param       limit  query  int  false  "Number of terms"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.PopularResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /search/popular [get]
func (h *Handlers) PopularSearches(c *gin.Context) {
	limit, err := utils.IntDefault(c.Query("limit"), h.opts.PopularLimit)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "limit: "+err.Error())
		return
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	terms, err := h.terms.Top(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodePopularFailed, err.Error())
		return
	}
	if terms == nil {
		terms = []domain.SearchTerm{}
	}
	ok(c, http.StatusOK, PopularResponse{Terms: terms})
}
