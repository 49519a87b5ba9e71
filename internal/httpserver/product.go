package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/pkg/logging"
)

// Product images above this size are rejected before touching the blob
// store.
const maxImageBytes = 5 << 20

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct accepts a multipart form: text fields for the product
// record plus an optional img file.
func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	product := models.Product{
		Title:           c.FormValue("title"),
		NewPrice:        c.FormValue("newPrice"),
		OldPrice:        c.FormValue("oldPrice"),
		Discount:        c.FormValue("discount"),
		Brand:           c.FormValue("brand"),
		Category:        c.FormValue("category"),
		Description:     c.FormValue("description"),
		NetWeight:       c.FormValue("netWeight"),
		ProductFeatures: c.FormValue("productFeatures"),
		DirectionToUse:  c.FormValue("directionToUse"),
	}

	var img *service.ImageUpload
	if fh, err := c.FormFile("img"); err == nil {
		if fh.Size > maxImageBytes {
			l.Warn("create_product_error", "status", 400, "reason", "image too large", "size", fh.Size)
			return echo.NewHTTPError(http.StatusBadRequest, "image must be at most 5MB")
		}
		src, err := fh.Open()
		if err != nil {
			l.Error("create_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot read image")
		}
		defer src.Close()
		img = &service.ImageUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      src,
		}
	}

	created, err := h.Svc.Create(ctx, &product, img)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	l.Info("create_product_success")
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "productId not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId not a uuid")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
