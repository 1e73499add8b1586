package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hayahstore/storefront-api/internal/models"
	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/pkg/tokens"
)

const userContextKey = "user"

type Middleware struct {
	Repo      service.UserRepo
	JWTSecret []byte
}

func New(repo service.UserRepo, secret []byte) *Middleware {
	return &Middleware{Repo: repo, JWTSecret: secret}
}

// RequireAuth verifies the bearer token and attaches the referenced user
// (password excluded) to the request context. Missing or invalid credentials
// are always a 401; there is no degraded anonymous mode.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := m.resolveUser(c)
		if !ok {
			return unauthorized(c, "Not authorized")
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// OptionalAuth attaches an identity when a valid bearer token is present and
// lets the request through anonymously otherwise. Used on guest-capable
// routes such as order placement.
func (m *Middleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, ok := m.resolveUser(c); ok {
			c.Set(userContextKey, user)
		}
		return next(c)
	}
}

// RequireAdmin gates a route on the identity RequireAuth attached; a valid
// non-admin identity is a 403, not a 401.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFromContext(c)
		if user == nil {
			return unauthorized(c, "Not authorized")
		}
		if user.Role != "admin" {
			return c.JSON(http.StatusForbidden, transport.Envelope{
				Status:  "error",
				Code:    http.StatusForbidden,
				Message: "Admin access required",
			})
		}
		return next(c)
	}
}

func (m *Middleware) resolveUser(c echo.Context) (*models.User, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
	if err != nil {
		return nil, false
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, false
	}

	user, err := m.Repo.FindUserByID(c.Request().Context(), id)
	if err != nil {
		return nil, false
	}
	return user, true
}

// UserFromContext returns the identity attached by RequireAuth/OptionalAuth,
// or nil for anonymous requests.
func UserFromContext(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, transport.Envelope{
		Status:  "error",
		Code:    http.StatusUnauthorized,
		Message: msg,
	})
}
