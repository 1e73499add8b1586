package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/transport"
	"github.com/hayahstore/storefront-api/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Validation Error", validationMessages(err)...)
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return serviceError(c, l, err, "User not found", "Error logging in")
	}

	l.Info("login_succeeded", "user", result.User.ID.Hex())
	return respond(c, http.StatusOK, "Login successful", echo.Map{
		"_id":   result.User.ID,
		"name":  result.User.Name,
		"email": result.User.Email,
		"token": result.Token,
	})
}

// Logout is a stateless acknowledgement. Tokens are not tracked server side,
// so the client simply discards its copy.
func (h *AuthHTTP) Logout(c echo.Context) error {
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}
