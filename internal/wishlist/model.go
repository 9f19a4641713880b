package wishlist

import "time"

// Item is one wishlist entry, unique per (user, product).
type Item struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
