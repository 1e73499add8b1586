package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hayahstore/storefront-api/internal/models"
)

// TotalRevenue sums totalAmount over every order that is not cancelled.
func (m *Mongo) TotalRevenue(ctx context.Context) (float64, error) {
	pipe := mongoMatchSumPipeline(bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}})

	cur, err := m.Orders.Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

func (m *Mongo) CountActiveOrders(ctx context.Context) (int64, error) {
	filter := bson.M{"status": bson.M{
		"$in": []string{models.OrderStatusPending, models.OrderStatusProcessing},
	}}
	return m.Orders.CountDocuments(ctx, filter)
}

func (m *Mongo) CountProductsInStock(ctx context.Context) (int64, error) {
	return m.Products.CountDocuments(ctx, bson.M{"stock": bson.M{"$gt": 0}})
}

// SalesByHour buckets non-cancelled orders created since the cutoff by
// hour-of-day and sums their amounts. Hours with no orders are absent from
// the result; the stats service zero-fills them.
func (m *Mongo) SalesByHour(ctx context.Context, since time.Time) (map[int]float64, error) {
	pipe := []bson.M{
		{"$match": bson.M{
			"createdAt": bson.M{"$gte": since},
			"status":    bson.M{"$ne": models.OrderStatusCancelled},
		}},
		{"$group": bson.M{
			"_id":   bson.M{"$hour": "$createdAt"},
			"total": bson.M{"$sum": "$totalAmount"},
		}},
	}

	cur, err := m.Orders.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Hour  int32   `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	buckets := make(map[int]float64, len(rows))
	for _, r := range rows {
		buckets[int(r.Hour)] = r.Total
	}
	return buckets, nil
}

func mongoMatchSumPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalAmount"},
		}},
	}
}
