package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hayahstore/storefront-api/internal/middleware/auth"
	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/internal/util"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// CreateOrder accepts orders from both signed-in customers and guests. When a
// valid token accompanies the request the order is attached to that account,
// otherwise guestName and guestEmail identify the buyer.
func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_order_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	var userID *primitive.ObjectID
	if user := auth.UserFromContext(c); user != nil {
		id := user.ID
		userID = &id
	}

	order, err := h.Svc.Place(ctx, req, userID)
	if err != nil {
		return serviceError(c, l, err, "Product not found", "Error creating order")
	}

	l.Info("order_placed", "order", order.ID.Hex(), "total", order.TotalAmount)
	return respond(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHTTP) GetMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	user := auth.UserFromContext(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Not authorized, no token")
	}

	orders, err := h.Svc.ListMine(ctx, user.ID)
	if err != nil {
		return serviceError(c, l, err, "Orders not found", "Error retrieving orders")
	}
	return respondList(c, "Orders retrieved successfully", orders, len(orders), nil)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	user := auth.UserFromContext(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Not authorized, no token")
	}

	order, err := h.Svc.Get(ctx, c.Param("id"), user)
	if err != nil {
		return serviceError(c, l, err, "Order not found", "Error retrieving order")
	}
	return respond(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	skip, limit := util.Calculate(page, limit)

	total, orders, err := h.Svc.ListAll(ctx, skip, limit)
	if err != nil {
		return serviceError(c, l, err, "Orders not found", "Error retrieving orders")
	}

	pagination := transport.NewPagination(page, limit, util.NumberOfPages(total, limit))
	return respondList(c, "Orders retrieved successfully", orders, len(orders), pagination)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_status_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	order, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return serviceError(c, l, err, "Order not found", "Error updating order status")
	}

	l.Info("order_status_updated", "order", order.ID.Hex(), "order_status", order.Status)
	return respond(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return serviceError(c, l, err, "Order not found", "Error deleting order")
	}

	l.Info("order_deleted", "order", c.Param("id"))
	return respond(c, http.StatusOK, "Order deleted successfully", nil)
}
