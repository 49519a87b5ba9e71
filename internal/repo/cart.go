package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
)

// CartByUser returns the user's cart with its items, or
// gorm.ErrRecordNotFound when the user has never added anything.
func (r *GormRepo) CartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem creates the cart lazily and merges quantity when the product is
// already a line item. One transaction per mutation; the quantity merge is
// a single in-database increment.
func (r *GormRepo) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		return tx.Create(&models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	})
}

// RemoveItem drops the product's line item entirely. A missing cart is
// gorm.ErrRecordNotFound; a product that simply is not in the cart is a
// silent no-op.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error
	})
}

// DecrementItem lowers the line item's quantity by one, removing the item
// outright at quantity 1 so a present item never holds quantity 0.
func (r *GormRepo) DecrementItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			First(&item).Error; err != nil {
			return err
		}

		if item.Quantity > 1 {
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error
		}
		return tx.Delete(&item).Error
	})
}
