package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("register_error", "status", 400, "reason", "duplicate email")
			return echo.NewHTTPError(http.StatusBadRequest, "user with this email already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "user creation failed")
		}
	}

	l.Info("register_success")
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"user":    user,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("login_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("login_error", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, "invalid admin credentials")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_error", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   token,
		"role":    user.Role,
		"user":    user,
	})
}

func (h *AuthHTTP) RegisterDealer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_dealer")

	var req transport.DealerRegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_dealer_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	dealer, err := h.Svc.RegisterDealer(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("register_dealer_error", "status", 400, "reason", "duplicate email")
			return echo.NewHTTPError(http.StatusBadRequest, "dealer with this email already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_dealer_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("register_dealer_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "dealer registration failed")
		}
	}

	l.Info("register_dealer_success")
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "dealer registered successfully",
		"dealer":  dealer,
	})
}

func (h *AuthHTTP) LoginDealer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_dealer")

	var req transport.DealerLoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_dealer_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, dealer, err := h.Svc.LoginDealer(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("login_dealer_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "dealer not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_dealer_error", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		default:
			l.Error("login_dealer_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "dealer login failed")
		}
	}

	l.Info("login_dealer_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "dealer login successful",
		"token":   token,
		"role":    dealer.Role,
		"dealer":  dealer,
	})
}
