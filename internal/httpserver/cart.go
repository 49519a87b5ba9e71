package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.Get(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId required")
	}

	cart, err := h.Svc.AddItem(ctx, userID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("add_to_cart_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product added to cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "cart not found")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// DecrementItem lowers the quantity by one; at quantity 1 the line item
// disappears from the cart.
func (h *CartHTTP) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	userID, err := GetID(c)
	if err != nil {
		l.Error("decrement_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("decrement_cart_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	cart, err := h.Svc.DecrementItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("decrement_cart_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "product not found in cart")
		}
		l.Error("decrement_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}
