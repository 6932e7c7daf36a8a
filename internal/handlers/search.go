package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/service/search"
	"github.com/intania/shop-backend/internal/util"
)

// SearchHandler serves the Elasticsearch-backed full-text search; the plain
// substring search lives on the catalog routes.
type SearchHandler struct {
	Search *search.Service
}

func (h *SearchHandler) Handler(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("page_size"), util.DefaultPageSize)
	_, size, from := util.Paginate(page, size)

	total, products, err := h.Search.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
