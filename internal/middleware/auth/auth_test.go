package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/pkg/tokens"
)

var testSecret = []byte("test-secret")

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		cp := *s.user
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func testRequest(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	handler := mw(func(c echo.Context) error {
		seen = UserFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, seen
}

func TestRequireAuth(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: "user"}
	m := New(&stubUserRepo{user: user}, testSecret)

	t.Run("no token", func(t *testing.T) {
		rec, seen := testRequest(t, m.RequireAuth, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, seen)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := tokens.Sign(user.ID.Hex(), "user", []byte("wrong-secret"), time.Minute)
		require.NoError(t, err)

		rec, seen := testRequest(t, m.RequireAuth, token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, seen)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := tokens.Sign(user.ID.Hex(), "user", testSecret, -time.Minute)
		require.NoError(t, err)

		rec, _ := testRequest(t, m.RequireAuth, token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		token, err := tokens.Sign(primitive.NewObjectID().Hex(), "user", testSecret, time.Minute)
		require.NoError(t, err)

		rec, _ := testRequest(t, m.RequireAuth, token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches user", func(t *testing.T) {
		token, err := tokens.Sign(user.ID.Hex(), "user", testSecret, time.Minute)
		require.NoError(t, err)

		rec, seen := testRequest(t, m.RequireAuth, token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		require.Equal(t, user.ID, seen.ID)
	})
}

func TestOptionalAuth(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: "user"}
	m := New(&stubUserRepo{user: user}, testSecret)

	t.Run("anonymous passes through", func(t *testing.T) {
		rec, seen := testRequest(t, m.OptionalAuth, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, seen)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		rec, seen := testRequest(t, m.OptionalAuth, "garbage")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, seen)
	})

	t.Run("valid token attaches user", func(t *testing.T) {
		token, err := tokens.Sign(user.ID.Hex(), "user", testSecret, time.Minute)
		require.NoError(t, err)

		rec, seen := testRequest(t, m.OptionalAuth, token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
	})
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: "admin"}
	customer := &models.User{ID: primitive.NewObjectID(), Role: "user"}

	chain := func(m *Middleware) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return m.RequireAuth(m.RequireAdmin(next))
		}
	}

	t.Run("admin passes", func(t *testing.T) {
		m := New(&stubUserRepo{user: admin}, testSecret)
		token, err := tokens.Sign(admin.ID.Hex(), "admin", testSecret, time.Minute)
		require.NoError(t, err)

		rec, seen := testRequest(t, chain(m), token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin", seen.Role)
	})

	t.Run("non admin gets 403", func(t *testing.T) {
		m := New(&stubUserRepo{user: customer}, testSecret)
		token, err := tokens.Sign(customer.ID.Hex(), "user", testSecret, time.Minute)
		require.NoError(t, err)

		rec, _ := testRequest(t, chain(m), token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		m := New(&stubUserRepo{user: customer}, testSecret)
		rec, _ := testRequest(t, chain(m), "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
