package services

import "errors"

// Business outcomes are returned, never panicked; handlers branch on these
// with errors.Is.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyProcessed  = errors.New("order already processed")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrEmptyCart         = errors.New("cart is empty")
)
