package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshkart/shopapi/internal/models"
)

func (r *GormRepo) CreateDealer(ctx context.Context, d *models.Dealer) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *GormRepo) DealerByEmail(ctx context.Context, email string) (*models.Dealer, error) {
	var dealer models.Dealer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&dealer).Error; err != nil {
		return nil, err
	}
	return &dealer, nil
}

func (r *GormRepo) DealerByID(ctx context.Context, id uuid.UUID) (*models.Dealer, error) {
	var dealer models.Dealer
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&dealer).Error; err != nil {
		return nil, err
	}
	return &dealer, nil
}
