package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/pkg/hash"
	"github.com/hayahstore/storefront-api/pkg/tokens"
)

type UserRepo interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthService struct {
	Repo      UserRepo
	JWTSecret []byte
}

type LoginResult struct {
	User  *models.User
	Token string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.Password, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := tokens.Sign(user.ID.Hex(), user.Role, s.JWTSecret, tokens.AccessTTL)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &LoginResult{User: user, Token: token}, nil
}
