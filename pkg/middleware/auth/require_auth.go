package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/pkg/tokens"
)

// TokenAuth guards owner-scoped routes. Identity lives entirely in the
// signed token; there is no server-side session to consult.
type TokenAuth struct {
	JWTSecret []byte
}

func NewTokenAuth(secret []byte) *TokenAuth {
	return &TokenAuth{JWTSecret: secret}
}

// RequireAuth rejects with 401 when no Authorization header is present and
// with 400 when the token fails verification. The status split is part of
// the external contract.
func (m *TokenAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(echo.HeaderAuthorization)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied, no token provided")
		}

		claims, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}
