package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEmptyCart marks an order placement attempted against a missing or
// empty cart.
var ErrEmptyCart = errors.New("cart is empty")

type GormRepo struct {
	DB *gorm.DB
}
