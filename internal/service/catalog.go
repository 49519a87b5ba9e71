package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/blobstore"
	"github.com/freshkart/shopapi/internal/events"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

const defaultProductListLimit = 100

// ImageUpload carries an incoming product image towards the blob store.
type ImageUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Store  blobstore.Store
	Events *events.Producer
}

func (s *CatalogService) List(ctx context.Context) ([]transport.ProductView, error) {
	products, err := s.Repo.ListProducts(ctx, defaultProductListLimit)
	if err != nil {
		return nil, err
	}
	return resolveProducts(ctx, s.Store, products), nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*transport.ProductView, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	views := resolveProducts(ctx, s.Store, []models.Product{*product})
	return &views[0], nil
}

// Create stores the optional image first so only its object key, never a
// URL, lands in the product record.
func (s *CatalogService) Create(ctx context.Context, product *models.Product, img *ImageUpload) (*transport.ProductView, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if product.Title == "" || product.NewPrice == "" {
		return nil, fmt.Errorf("title and newPrice required: %w", ErrValidation)
	}

	if img != nil {
		key, err := s.Store.Upload(ctx, img.Name, img.ContentType, img.Reader)
		if err != nil {
			l.Error("image_upload_failed", "name", img.Name, "error", err)
			return nil, err
		}
		product.Img = key
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicProductEvents, product.ID.String(), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"title":      product.Title,
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicProductEvents, "error", err)
	}

	views := resolveProducts(ctx, s.Store, []models.Product{*product})
	return &views[0], nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}

	if err := s.Events.Publish(ctx, events.TopicProductEvents, id.String(), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicProductEvents, "error", err)
	}
	return nil
}
