package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/internal/mykafka"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

const DefaultPaymentMethod = "COD"

type OrderRepo interface {
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListOrders(ctx context.Context, skip, limit int) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
}

// ProductStore is the slice of the product repository order placement needs.
type ProductStore interface {
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type OrderService struct {
	Repo     OrderRepo
	Products ProductStore
	Producer *mykafka.Producer
}

// Place validates and decrements stock per line item sequentially, snapshots
// the product's current price into the order, and persists the order last.
// The sequence is not transactional: a failure on item N leaves items 1..N-1
// already decremented with no order written. Callers must treat a partial
// failure as requiring manual reconciliation.
func (s *OrderService) Place(ctx context.Context, req transport.CreateOrderRequest, userID *primitive.ObjectID) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		pid, err := primitive.ObjectIDFromHex(line.Product)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ErrValidation, line.Product)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}

		product, err := s.Products.FindProductByID(ctx, pid)
		if err != nil {
			if translated := translate(err); errors.Is(translated, ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s", ErrNotFound, line.Product)
			}
			return nil, err
		}

		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Title)
		}

		if err := s.Products.DecrementStock(ctx, pid, line.Quantity); err != nil {
			return nil, translate(err)
		}

		items = append(items, models.OrderItem{
			Product:  product.ID,
			Quantity: line.Quantity,
			Price:    product.Price,
		})
		totalAmount += product.Price * float64(line.Quantity)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	order := &models.Order{
		User:            userID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		Items:           items,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, map[string]any{"type": "order_created", "orderID": created.ID.Hex(), "totalAmount": created.TotalAmount})
	return created, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

// Get enforces the ownership view: admins see everything, authenticated users
// see their own orders, and guest orders (no user reference) are admin-only.
func (s *OrderService) Get(ctx context.Context, idStr string, caller *models.User) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}

	order, err := s.Repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if caller.Role != "admin" {
		if order.User == nil || *order.User != caller.ID {
			return nil, fmt.Errorf("%w: not your order", ErrForbidden)
		}
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, skip, limit int) (int64, []models.Order, error) {
	total, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return 0, nil, err
	}

	orders, err := s.Repo.ListOrders(ctx, skip, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, idStr, status string) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, map[string]any{"type": "order_status_changed", "orderID": order.ID.Hex(), "status": order.Status})
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, idStr string) error {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}
	return translate(s.Repo.DeleteOrder(ctx, id))
}

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}
