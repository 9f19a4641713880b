package user

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User's Password holds the bcrypt hash and must never reach a response
// body.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	GoogleID  *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	Phone      *string   `json:"phone"`
	AvatarURL  *string   `json:"avatar_url"`
	Address1   *string   `json:"address1"`
	Address2   *string   `json:"address2"`
	City       *string   `json:"city"`
	State      *string   `json:"state"`
	PostalCode *string   `json:"postal_code"`
	Country    *string   `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UpdateProfileParams struct {
	UserID     uint
	FirstName  *string
	LastName   *string
	Phone      *string
	AvatarURL  *string
	Address1   *string
	Address2   *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}
