// Product search HTTP handler.
//
//   - GET /products/search
//
// Query parameters are parsed strictly: a value that is present but does not
// parse is a 400, never silently replaced by its default.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/search"
	"github.com/tbourn/go-storefront-search/internal/services"
	"github.com/tbourn/go-storefront-search/internal/utils"
)

// parseSearchParams reads the search query string on top of def. The
// highlights parameter also accepts "html", which enables highlights and
// reports that the spans should be rendered as markup.
func parseSearchParams(c *gin.Context, def services.SearchParams) (p services.SearchParams, renderHTML bool, err error) {
	p = def

	if p.Page, err = utils.IntDefault(c.Query("page"), def.Page); err != nil {
		return p, false, errors.New("page: " + err.Error())
	}
	if p.MinPrice, err = utils.FloatDefault(c.Query("minPrice"), def.MinPrice); err != nil {
		return p, false, errors.New("minPrice: " + err.Error())
	}
	if p.MaxPrice, err = utils.FloatDefault(c.Query("maxPrice"), def.MaxPrice); err != nil {
		return p, false, errors.New("maxPrice: " + err.Error())
	}
	if hl := strings.TrimSpace(c.Query("highlights")); strings.EqualFold(hl, "html") {
		p.Highlights, renderHTML = true, true
	} else if p.Highlights, err = utils.BoolDefault(hl, def.Highlights); err != nil {
		return p, false, errors.New("highlights: " + err.Error())
	}
	p.CategoryID = strings.TrimSpace(c.Query("category"))
	p.Search = c.Query("search")
	p.Sort = domain.SortKey(strings.ToLower(strings.TrimSpace(c.Query("sort"))))

	return p, renderHTML, p.Validate()
}

// SearchProducts godoc
// @ID          searchProducts
// @Summary     Search products
// @Description Filters the catalog by price, category and free text. Without an explicit sort a search term ranks results by relevance; otherwise products are ordered by the sort key (default newest first). Responses are cached briefly; X-Cache reports HIT or MISS.
// @Tags        Search
// @Produce     json
//
// @Param       page        query  int     false  "Page number"                   minimum(1) default(1)
// @Param       category    query  string  false  "Category ID"
// @Param       search      query  string  false  "Free-text query"               example(wireless headphones)
// @Param       minPrice    query  number  false  "Minimum price (inclusive)"     minimum(0) default(0)
// @Param       maxPrice    query  number  false  "Maximum price (inclusive)"     minimum(0) default(999999)
// @Param       sort        query  string  false  "Sort key"                      Enums(price_asc, price_desc, name_asc, name_desc, popularity, newest)
// @Param       highlights  query  string  false  "Attach match highlight spans; html also renders nameHtml/descriptionHtml"  Enums(true, false, html) default(false)
//
// @Success     200  {object}  services.SearchResult
// @Header      200  {string}  X-Cache  "HIT or MISS"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Search failed"
// @Router      /products/search [get]
func (h *Handlers) SearchProducts(c *gin.Context) {
	p, renderHTML, err := parseSearchParams(c, h.opts.SearchDefaults)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	res, cached, err := h.searchSvc.Search(c.Request.Context(), p)
	switch {
	case err == nil:
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	default:
		fail(c, http.StatusInternalServerError, ErrCodeSearchFailed, err.Error())
		return
	}

	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	if renderHTML {
		res.Products = search.RenderProducts(res.Products, "mark")
	}
	ok(c, http.StatusOK, res)
}
