package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrPriceOutOfBounds   = errors.New("PRICE_OUT_OF_BOUNDS")
	ErrInvalidPriceTarget = errors.New("INVALID_PRICE_TARGET")
	ErrPriceRowNotFound   = errors.New("PRICE_ROW_NOT_FOUND")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrEmptyCart          = errors.New("EMPTY_CART")
	ErrPaymentFailed      = errors.New("PAYMENT_FAILED")
)
