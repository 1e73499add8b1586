package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/internal/transport"
)

type ContactRepo interface {
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	FindContactMessageByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id primitive.ObjectID) error
}

type ContactService struct {
	Repo ContactRepo
}

func (s *ContactService) Create(ctx context.Context, req transport.CreateContactMessageRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	created, err := s.Repo.CreateContactMessage(ctx, msg)
	return created, translate(err)
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Repo.ListContactMessages(ctx)
}

func (s *ContactService) Get(ctx context.Context, idStr string) (*models.ContactMessage, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}
	msg, err := s.Repo.FindContactMessageByID(ctx, id)
	return msg, translate(err)
}

func (s *ContactService) Delete(ctx context.Context, idStr string) error {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, idStr)
	}
	return translate(s.Repo.DeleteContactMessage(ctx, id))
}
