package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hayahstore/storefront-api/internal/models"
)

func (m *Mongo) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	now := time.Now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	res, err := m.Contacts.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return msg, nil
}

func (m *Mongo) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.Contacts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	msgs := []models.ContactMessage{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *Mongo) FindContactMessageByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := m.Contacts.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *Mongo) DeleteContactMessage(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Contacts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
