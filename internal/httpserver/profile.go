package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/pkg/logging"
)

type ProfileHTTP struct {
	Svc *service.AuthService
}

func (h *ProfileHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.user")

	userID, err := GetID(c)
	if err != nil {
		l.Error("profile_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("profile_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *ProfileHTTP) DealerProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.dealer")

	dealerID, err := GetID(c)
	if err != nil {
		l.Error("dealer_profile_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	dealer, err := h.Svc.DealerProfile(ctx, dealerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("dealer_profile_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "dealer not found")
		}
		l.Error("dealer_profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"dealer": dealer})
}
