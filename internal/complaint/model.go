package complaint

import "time"

type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

type Complaint struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	OrderID   *string   `json:"order_id,omitempty"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateComplaintParams struct {
	UserID   *uint
	Email    string
	OrderID  *string
	Category string
	Message  string
}
