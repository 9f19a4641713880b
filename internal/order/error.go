package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrMissingOrderID    = errors.New("order ID is required")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrUnauthorized      = errors.New("unauthorized")
)
