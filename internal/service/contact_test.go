package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/internal/transport"
)

type fakeContactRepo struct {
	msgs map[primitive.ObjectID]*models.ContactMessage
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{msgs: map[primitive.ObjectID]*models.ContactMessage{}}
}

func (f *fakeContactRepo) CreateContactMessage(_ context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	cp := *msg
	cp.ID = primitive.NewObjectID()
	f.msgs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeContactRepo) ListContactMessages(context.Context) ([]models.ContactMessage, error) {
	out := make([]models.ContactMessage, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeContactRepo) FindContactMessageByID(_ context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	m, ok := f.msgs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *m
	return &cp, nil
}

func (f *fakeContactRepo) DeleteContactMessage(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.msgs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.msgs, id)
	return nil
}

func TestContactMessages(t *testing.T) {
	ctx := context.Background()
	svc := &ContactService{Repo: newFakeContactRepo()}

	msg, err := svc.Create(ctx, transport.CreateContactMessageRequest{
		Name:    "Layla",
		Email:   "layla@example.com",
		Message: "Do you ship internationally?",
	})
	require.NoError(t, err)
	require.False(t, msg.ID.IsZero())

	got, err := svc.Get(ctx, msg.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "Layla", got.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, msg.ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, msg.ID.Hex()), ErrNotFound)

	_, err = svc.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrInvalidID)
}
