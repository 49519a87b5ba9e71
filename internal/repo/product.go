package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Order("title ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	byID := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
