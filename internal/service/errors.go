package service

import "errors"

var (
	ErrValidation         = errors.New("validation")           // 400
	ErrDuplicateEmail     = errors.New("email already exists") // 400
	ErrInvalidCredentials = errors.New("invalid credentials")  // 400
	ErrEmptyCart          = errors.New("cart is empty")        // 400
	ErrForbidden          = errors.New("forbidden")            // 403
	ErrNotFound           = errors.New("not found")            // 404
)
