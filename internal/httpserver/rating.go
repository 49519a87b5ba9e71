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

type RatingHTTP struct {
	Svc *service.RatingService
}

// GetRatings is public. An unparseable product id yields the zero
// aggregate rather than an error, so the storefront can render an
// empty rating block without special-casing.
func (h *RatingHTTP) GetRatings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.list")

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusOK, transport.RatingsAggregate{Ratings: []transport.RatingView{}})
	}

	agg, err := h.Svc.Aggregate(ctx, productID)
	if err != nil {
		l.Error("get_ratings_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, agg)
}

func (h *RatingHTTP) Rate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.rate")

	userID, err := GetID(c)
	if err != nil {
		l.Error("rate_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("rate_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	var req transport.RateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("rate_error", "status", 400, "reason", "bad body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.Svc.Rate(ctx, userID, productID, req.Rating, req.Review); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("rate_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("rate_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("rate_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	agg, err := h.Svc.Aggregate(ctx, productID)
	if err != nil {
		l.Error("rate_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("rate_success", "product_id", productID)
	return c.JSON(http.StatusCreated, agg)
}
