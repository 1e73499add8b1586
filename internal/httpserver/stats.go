package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type StatsHTTP struct {
	Svc *service.StatsService
}

func (h *StatsHTTP) GetDashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.dashboard")

	stats, err := h.Svc.Dashboard(ctx)
	if err != nil {
		return serviceError(c, l, err, "Stats not found", "Error retrieving dashboard stats")
	}
	return respond(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
