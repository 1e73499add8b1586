package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hayahstore/storefront-api/internal/models"
)

// productRepoStub backs the catalog service in handler tests with an
// in-memory product table.
type productRepoStub struct {
	products map[primitive.ObjectID]*models.Product
}

func newProductRepoStub() *productRepoStub {
	return &productRepoStub{products: map[primitive.ObjectID]*models.Product{}}
}

func (s *productRepoStub) add(p models.Product) primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := p
	s.products[p.ID] = &cp
	return p.ID
}

func (s *productRepoStub) ListProducts(_ context.Context, skip, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	if skip >= len(out) {
		return []models.Product{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *productRepoStub) CountProducts(context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *productRepoStub) FindProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (s *productRepoStub) FindProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *productRepoStub) SlugsMatching(_ context.Context, base string) ([]string, error) {
	var out []string
	for _, p := range s.products {
		if p.Slug == base || strings.HasPrefix(p.Slug, base+"-") {
			out = append(out, p.Slug)
		}
	}
	return out, nil
}

func (s *productRepoStub) CreateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	cp := *p
	cp.ID = primitive.NewObjectID()
	s.products[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *productRepoStub) UpdateProduct(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := set["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := set["slug"]; ok {
		p.Slug = v.(string)
	}
	if v, ok := set["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := set["stock"]; ok {
		p.Stock = v.(int)
	}
	if v, ok := set["images"]; ok {
		p.Images = v.([]string)
	}
	if v, ok := set["sizes"]; ok {
		p.Sizes = v.([]string)
	}
	if v, ok := set["tags"]; ok {
		p.Tags = v.([]string)
	}
	cp := *p
	return &cp, nil
}

func (s *productRepoStub) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.products, id)
	return nil
}

func (s *productRepoStub) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	p, ok := s.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Stock -= quantity
	return nil
}

type orderRepoStub struct {
	orders map[primitive.ObjectID]*models.Order
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *orderRepoStub) CreateOrder(_ context.Context, o *models.Order) (*models.Order, error) {
	cp := *o
	cp.ID = primitive.NewObjectID()
	s.orders[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *orderRepoStub) FindOrderByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *o
	return &cp, nil
}

func (s *orderRepoStub) ListOrdersByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		if o.User != nil && *o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *orderRepoStub) ListOrders(_ context.Context, skip, limit int) ([]models.Order, error) {
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	if skip >= len(out) {
		return []models.Order{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *orderRepoStub) CountOrders(context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *orderRepoStub) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (s *orderRepoStub) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.orders[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.orders, id)
	return nil
}

type contactRepoStub struct {
	msgs map[primitive.ObjectID]*models.ContactMessage
}

func newContactRepoStub() *contactRepoStub {
	return &contactRepoStub{msgs: map[primitive.ObjectID]*models.ContactMessage{}}
}

func (s *contactRepoStub) CreateContactMessage(_ context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	cp := *msg
	cp.ID = primitive.NewObjectID()
	s.msgs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *contactRepoStub) ListContactMessages(context.Context) ([]models.ContactMessage, error) {
	out := make([]models.ContactMessage, 0, len(s.msgs))
	for _, m := range s.msgs {
		out = append(out, *m)
	}
	return out, nil
}

func (s *contactRepoStub) FindContactMessageByID(_ context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	m, ok := s.msgs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *m
	return &cp, nil
}

func (s *contactRepoStub) DeleteContactMessage(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.msgs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.msgs, id)
	return nil
}

// newTestContext builds an echo context with the project's validator wired,
// the way requests reach handlers through the real server.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
