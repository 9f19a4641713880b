package wishlist

import "errors"

var (
	ErrItemNotFound   = errors.New("wishlist item not found")
	ErrMissingProduct = errors.New("product ID is required")
)
