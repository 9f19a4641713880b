package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Customer struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   Address `json:"address"`
}

type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
}

// Order is the canonical server-side order record, keyed by the
// client-visible OrderID.
type Order struct {
	ID             uint      `json:"-"`
	OrderID        string    `json:"order_id"`
	SessionID      *string   `json:"session_id,omitempty"`
	UserID         *uint     `json:"user_id,omitempty"`
	Customer       Customer  `json:"customer"`
	Items          []Item    `json:"items"`
	DeliveryMethod string    `json:"delivery_method"`
	DeliveryCost   int64     `json:"delivery_cost"`
	PaymentMethod  string    `json:"payment_method"`
	Subtotal       int64     `json:"subtotal"`
	Discount       int64     `json:"discount"`
	Total          int64     `json:"total"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpsertParams is the raw order payload a client may post. Anything absent
// is filled in by normalization before the upsert.
type UpsertParams struct {
	OrderID        string   `json:"order_id"`
	UserID         *uint    `json:"user_id,omitempty"`
	Customer       Customer `json:"customer"`
	Items          []Item   `json:"items"`
	DeliveryMethod string   `json:"delivery_method"`
	DeliveryCost   *int64   `json:"delivery_cost,omitempty"`
	PaymentMethod  string   `json:"payment_method"`
	Subtotal       int64    `json:"subtotal"`
	Discount       int64    `json:"discount"`
	Total          int64    `json:"total"`
	Status         string   `json:"status"`
}
