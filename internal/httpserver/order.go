package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := GetID(c)
	if err != nil {
		l.Error("list_orders_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.List(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, err := GetID(c)
	if err != nil {
		l.Error("place_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := h.Svc.Place(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			l.Warn("place_order_error", "status", 400, "reason", "empty cart")
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		l.Error("place_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("place_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := GetID(c)
	if err != nil {
		l.Error("get_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "orderId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "orderId not a uuid")
	}

	order, err := h.Svc.Get(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

func (h *OrderHTTP) IncreaseItem(c echo.Context) error {
	return h.adjustItem(c, "order.increase", h.Svc.IncreaseItem)
}

func (h *OrderHTTP) DecreaseItem(c echo.Context) error {
	return h.adjustItem(c, "order.decrease", h.Svc.DecreaseItem)
}

func (h *OrderHTTP) adjustItem(c echo.Context, handler string, adjust func(ctx context.Context, orderID, userID, productID uuid.UUID) (*transport.OrderView, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	userID, err := GetID(c)
	if err != nil {
		l.Error("adjust_item_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("adjust_item_error", "status", 400, "reason", "orderId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "orderId not a uuid")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("adjust_item_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	order, err := adjust(ctx, orderID, userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("adjust_item_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "order or item not found")
		}
		l.Error("adjust_item_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order})
}

func (h *OrderHTTP) MarkPlaced(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.mark_placed")

	userID, err := GetID(c)
	if err != nil {
		l.Error("mark_placed_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("mark_placed_error", "status", 400, "reason", "orderId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "orderId not a uuid")
	}

	order, err := h.Svc.MarkPlaced(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("mark_placed_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("mark_placed_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("mark_placed_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}
