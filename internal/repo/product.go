package repo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hayahstore/storefront-api/internal/models"
)

func (m *Mongo) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := m.Products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (m *Mongo) CountProducts(ctx context.Context) (int64, error) {
	return m.Products.CountDocuments(ctx, bson.M{})
}

func (m *Mongo) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := m.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Mongo) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := m.Products.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugsMatching returns every stored slug matching ^base(-[0-9]+)?$,
// case-insensitive.
func (m *Mongo) SlugsMatching(ctx context.Context, base string) ([]string, error) {
	pattern := "^" + regexp.QuoteMeta(base) + "(-[0-9]+)?$"
	filter := bson.M{"slug": primitive.Regex{Pattern: pattern, Options: "i"}}

	cur, err := m.Products.Find(ctx, filter, options.Find().SetProjection(bson.M{"slug": 1}))
	if err != nil {
		return nil, err
	}

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	slugs := make([]string, len(docs))
	for i, d := range docs {
		slugs[i] = d.Slug
	}
	return slugs, nil
}

func (m *Mongo) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := m.Products.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (m *Mongo) UpdateProduct(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := m.Products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Mongo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *Mongo) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := m.Products.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": -quantity}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
