package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSizeNotAvailable = errors.New("size not available for product")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
)
