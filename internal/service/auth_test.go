package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/pkg/hash"
	"github.com/hayahstore/storefront-api/pkg/tokens"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			cp.Password = ""
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func seedUser(t *testing.T, email, password, role string) (*fakeUserRepo, *models.User) {
	t.Helper()
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Admin",
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	return &fakeUserRepo{users: map[string]*models.User{email: u}}, u
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	secret := []byte("test-secret")

	t.Run("valid credentials", func(t *testing.T) {
		repo, u := seedUser(t, "admin@hayah.store", "s3cret", "admin")
		svc := &AuthService{Repo: repo, JWTSecret: secret}

		res, err := svc.Login(ctx, "admin@hayah.store", "s3cret")
		require.NoError(t, err)
		require.Equal(t, u.ID, res.User.ID)
		require.Empty(t, res.User.Password)

		claims, err := tokens.AccessClaimsFromToken(res.Token, secret)
		require.NoError(t, err)
		require.Equal(t, u.ID.Hex(), claims.Subject)
		require.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, _ := seedUser(t, "admin@hayah.store", "s3cret", "admin")
		svc := &AuthService{Repo: repo, JWTSecret: secret}

		_, err := svc.Login(ctx, "admin@hayah.store", "wrong")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := &AuthService{Repo: &fakeUserRepo{users: map[string]*models.User{}}, JWTSecret: secret}
		_, err := svc.Login(ctx, "ghost@hayah.store", "s3cret")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty credentials", func(t *testing.T) {
		repo, _ := seedUser(t, "admin@hayah.store", "s3cret", "admin")
		svc := &AuthService{Repo: repo, JWTSecret: secret}

		_, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("token rejected with other secret", func(t *testing.T) {
		repo, _ := seedUser(t, "admin@hayah.store", "s3cret", "admin")
		svc := &AuthService{Repo: repo, JWTSecret: secret}

		res, err := svc.Login(ctx, "admin@hayah.store", "s3cret")
		require.NoError(t, err)

		_, err = tokens.AccessClaimsFromToken(res.Token, []byte("other-secret"))
		require.Error(t, err)
	})
}
