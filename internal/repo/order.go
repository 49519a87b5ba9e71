package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
)

// PlaceOrder snapshots the cart's line items into a new order and clears
// the cart in the same transaction. The cart row itself survives as an
// empty shell. A missing or empty cart is ErrEmptyCart.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}

		order = models.Order{
			UserID: userID,
			Status: models.OrderStatusOpen,
			Items:  items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrdersByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID scopes by owner as well as id, so a foreign order is
// indistinguishable from a missing one.
func (r *GormRepo) OrderByID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AdjustItem changes a line item's quantity by delta (+1/-1). An order
// line item is pinned at quantity 1: decreasing at 1 is a no-op, the item
// is never removed. A product missing from the order is
// gorm.ErrRecordNotFound.
func (r *GormRepo) AdjustItem(ctx context.Context, orderID, userID, productID uuid.UUID, delta int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			return err
		}

		var item models.OrderItem
		if err := tx.Where("order_id = ? AND product_id = ?", order.ID, productID).
			First(&item).Error; err != nil {
			return err
		}

		switch {
		case delta > 0:
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity + 1")).Error
		case item.Quantity > 1:
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error
		default:
			return nil
		}
	})
}

// MarkPlaced sets the status unconditionally; re-placing a placed order is
// an idempotent no-op.
func (r *GormRepo) MarkPlaced(ctx context.Context, orderID, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND user_id = ?", orderID, userID).
		Update("status", models.OrderStatusPlaced)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
