package cart

import "time"

// CartLine is one entry in a user's cart, unique per (product, size).
type CartLine struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID string    `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddToCartParams struct {
	UserID    uint
	ProductID string
	Size      string
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID    uint
	ProductID string
	Size      string
	Quantity  int
}

type RemoveFromCartParams struct {
	UserID    uint
	ProductID string
	Size      string
}
