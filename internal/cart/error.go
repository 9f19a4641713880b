package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrMissingProduct  = errors.New("product ID is required")

	// -- Resource State --
	ErrCartLineNotFound  = errors.New("cart line not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
