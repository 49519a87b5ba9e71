package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
)

// UpsertRating keeps at most one rating per (product, user): an existing
// rating is updated in place, otherwise a new one is created. The unique
// index on the pair catches the create/create race the lookup cannot.
func (r *GormRepo) UpsertRating(ctx context.Context, rating *models.Rating) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("product_id = ? AND user_id = ?", rating.ProductID, rating.UserID).
			First(&existing).Error
		if err == nil {
			existing.Rating = rating.Rating
			if rating.Review != "" {
				existing.Review = rating.Review
			}
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*rating = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(rating).Error
	})
}

func (r *GormRepo) RatingsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.DB.WithContext(ctx).Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
