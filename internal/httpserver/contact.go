package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.create")

	var req transport.CreateContactMessageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("contact_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("contact_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	msg, err := h.Svc.Create(ctx, req)
	if err != nil {
		return serviceError(c, l, err, "Message not found", "Error sending message")
	}

	l.Info("contact_message_received", "message", msg.ID.Hex())
	return respond(c, http.StatusCreated, "Message sent successfully", msg)
}

func (h *ContactHTTP) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.list")

	msgs, err := h.Svc.List(ctx)
	if err != nil {
		return serviceError(c, l, err, "Messages not found", "Error retrieving messages")
	}
	return respondList(c, "Messages retrieved successfully", msgs, len(msgs), nil)
}

func (h *ContactHTTP) GetMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.get")

	msg, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, l, err, "Message not found", "Error retrieving message")
	}
	return respond(c, http.StatusOK, "Message retrieved successfully", msg)
}

func (h *ContactHTTP) DeleteMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return serviceError(c, l, err, "Message not found", "Error deleting message")
	}

	l.Info("contact_message_deleted", "message", c.Param("id"))
	return respond(c, http.StatusOK, "Message deleted successfully", nil)
}
