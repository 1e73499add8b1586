package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/transport"
)

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, transport.Envelope{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func respondList(c echo.Context, message string, data any, results int, p *transport.Pagination) error {
	return c.JSON(http.StatusOK, transport.Envelope{
		Status:     "success",
		Code:       http.StatusOK,
		Message:    message,
		Data:       data,
		Results:    &results,
		Pagination: p,
	})
}

func respondError(c echo.Context, code int, message string, errs ...string) error {
	return c.JSON(code, transport.Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Errors:  errs,
	})
}

// serviceError translates the service error taxonomy into an envelope
// response. Unrecognized errors are logged and surface as a 500 with the
// handler's fallback message.
func serviceError(c echo.Context, l *slog.Logger, err error, notFoundMsg, internalMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", err.Error())
	case errors.Is(err, service.ErrInvalidID):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, service.ErrInsufficientStock):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Duplicate key error")
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn("request rejected", "status", 401, "error", err)
		return respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrForbidden):
		l.Warn("request rejected", "status", 403, "error", err)
		return respondError(c, http.StatusForbidden, "Not authorized to view this resource")
	case errors.Is(err, service.ErrNotFound):
		l.Warn("request rejected", "status", 404, "error", err)
		return respondError(c, http.StatusNotFound, notFoundMsg)
	default:
		l.Error("request failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, internalMsg)
	}
}
