package httpserver

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetID reads the authenticated subject the auth middleware placed on the
// context.
func GetID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}

	return userID, nil
}
