package httpserver

import (
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/search"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/internal/util"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		l.Warn("search_rejected", "status", 400, "error", "empty query")
		return respondError(c, http.StatusBadRequest, "Validation Error", "q is required")
	}
	if h.ES == nil {
		l.Error("search_unavailable", "status", 503)
		return respondError(c, http.StatusServiceUnavailable, "Search is not available")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	from, limit := util.Calculate(page, limit)

	total, items, err := search.Search(ctx, h.ES, h.Index, query, from, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "Error searching products")
	}

	pagination := transport.NewPagination(page, limit, util.NumberOfPages(total, limit))
	return respondList(c, "Products retrieved successfully", items, len(items), pagination)
}
