package discount

import "time"

type DiscountType string

const (
	TypePercentage DiscountType = "percentage"
	TypeFixed      DiscountType = "fixed"
)

// Discount is a server-owned coupon definition.
type Discount struct {
	ID          uint         `json:"id"`
	Code        string       `json:"code"`
	Type        DiscountType `json:"discount_type"`
	Value       int64        `json:"value"`
	MinPurchase int64        `json:"min_purchase"`
	StartsAt    time.Time    `json:"starts_at"`
	EndsAt      time.Time    `json:"ends_at"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Applied is the validated snapshot held by a checkout session.
type Applied struct {
	Code         string       `json:"code"`
	Type         DiscountType `json:"discount_type"`
	Value        int64        `json:"value"`
	AppliedValue int64        `json:"applied_value"`
}

type CreateDiscountParams struct {
	Code        string
	Type        DiscountType
	Value       int64
	MinPurchase int64
	StartsAt    time.Time
	EndsAt      time.Time
}
