package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hayahstore/storefront-api/internal/models"
)

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByID excludes the password hash; it backs the auth middleware,
// which must never carry credentials into the request context.
func (m *Mongo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var u models.User
	if err := m.Users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
