package service

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/internal/mykafka"
	"github.com/hayahstore/storefront-api/internal/search"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/internal/util"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type ProductRepo interface {
	ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	SlugsMatching(ctx context.Context, base string) ([]string, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

type CatalogService struct {
	Repo     ProductRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

var hexID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func (s *CatalogService) List(ctx context.Context, skip, limit int) (int64, []models.Product, error) {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return 0, nil, err
	}

	items, err := s.Repo.ListProducts(ctx, skip, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// Get resolves a product by primary id when the identifier looks like a
// 24-character hex ObjectID, by slug otherwise.
func (s *CatalogService) Get(ctx context.Context, idOrSlug string) (*models.Product, error) {
	if hexID.MatchString(idOrSlug) {
		id, err := primitive.ObjectIDFromHex(idOrSlug)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidID, idOrSlug)
		}
		p, err := s.Repo.FindProductByID(ctx, id)
		return p, translate(err)
	}

	p, err := s.Repo.FindProductBySlug(ctx, idOrSlug)
	return p, translate(err)
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	slug := req.Slug
	if slug == "" {
		var err error
		if slug, err = s.GenerateUniqueSlug(ctx, req.Title, ""); err != nil {
			return nil, err
		}
	}

	var price float64
	if req.Price != nil {
		price = *req.Price
	}

	p := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		Stock:       req.Stock,
		Sizes:       emptyIfNil(req.Sizes),
		Tags:        emptyIfNil(req.Tags),
		Images:      emptyIfNil(req.Images),
		Slug:        slug,
	}

	created, err := s.Repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, map[string]any{"type": "product_created", "productID": created.ID.Hex(), "title": created.Title})
	s.index(ctx, created)
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, idStr string, req transport.UpdateProductRequest) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}

	current, err := s.Repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Sizes != nil {
		set["sizes"] = req.Sizes
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	// Replace policy: freshly uploaded images become the whole list.
	if req.Images != nil {
		set["images"] = req.Images
	}

	switch {
	case req.Slug != nil:
		set["slug"] = *req.Slug
	case req.Title != nil && *req.Title != current.Title:
		slug, err := s.GenerateUniqueSlug(ctx, *req.Title, current.Slug)
		if err != nil {
			return nil, err
		}
		set["slug"] = slug
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, set)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, map[string]any{"type": "product_updated", "productID": updated.ID.Hex(), "title": updated.Title})
	s.index(ctx, updated)
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, idStr string) error {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return translate(err)
	}

	s.publish(ctx, map[string]any{"type": "product_deleted", "productID": idStr})
	s.unindex(ctx, idStr)
	return nil
}

// GenerateUniqueSlug derives a slug from the title and resolves collisions by
// appending the smallest free positive counter. oldSlug, when non-empty, is
// excluded from the candidate set so an update keeping its own slug is not
// re-suffixed. Concurrent creations racing on the same title are caught by the
// unique index, not here.
func (s *CatalogService) GenerateUniqueSlug(ctx context.Context, title, oldSlug string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "product-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	taken, err := s.Repo.SlugsMatching(ctx, base)
	if err != nil {
		return "", err
	}
	if oldSlug != "" {
		taken = slices.DeleteFunc(taken, func(s string) bool { return s == oldSlug })
	}

	if len(taken) == 0 || !slices.Contains(taken, base) {
		return base, nil
	}

	counter := 1
	for slices.Contains(taken, base+"-"+strconv.Itoa(counter)) {
		counter++
	}
	return base + "-" + strconv.Itoa(counter), nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.ESIndex, p); err != nil {
		logging.FromContext(ctx).Error("es index failed", "product", p.ID.Hex(), "error", err)
	}
}

func (s *CatalogService) unindex(ctx context.Context, id string) {
	if s.ES == nil {
		return
	}
	if err := search.RemoveProduct(ctx, s.ES, s.ESIndex, id); err != nil {
		logging.FromContext(ctx).Error("es delete failed", "product", id, "error", err)
	}
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
