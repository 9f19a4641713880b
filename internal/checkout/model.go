package checkout

import (
	"time"

	"fashniz-be/internal/discount"
	"fashniz-be/internal/order"
)

type Step string

const (
	StepAddress      Step = "address"
	StepDelivery     Step = "delivery"
	StepPayment      Step = "payment"
	StepReview       Step = "review"
	StepConfirmation Step = "confirmation"
)

// stepOrder is the linear path through the wizard. A session may move back
// to any earlier step but only advances one step at a time.
var stepOrder = []Step{StepAddress, StepDelivery, StepPayment, StepReview, StepConfirmation}

func stepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionConfirmed SessionStatus = "confirmed"
	SessionExpired   SessionStatus = "expired"
)

const SessionTTL = 30 * time.Minute

type Delivery struct {
	Method string `json:"method"`
	Cost   int64  `json:"cost"`
}

type Payment struct {
	Method    string `json:"method"`
	CardToken string `json:"card_token,omitempty"`
	CardLast4 string `json:"card_last4,omitempty"`
}

// Session is a checkout in flight. Items and Subtotal are snapshotted from
// the cart at creation so later catalog edits cannot change a total the
// buyer already saw.
type Session struct {
	ID          string            `json:"id"`
	UserID      uint              `json:"user_id"`
	Status      SessionStatus     `json:"status"`
	Step        Step              `json:"step"`
	Customer    *order.Customer   `json:"customer,omitempty"`
	Delivery    *Delivery         `json:"delivery,omitempty"`
	Payment     *Payment          `json:"payment,omitempty"`
	Items       []order.Item      `json:"items"`
	Subtotal    int64             `json:"subtotal"`
	Coupon      *discount.Applied `json:"coupon,omitempty"`
	OrderTotal  int64             `json:"order_total"`
	OrderID     *string           `json:"order_id,omitempty"`
	ExpiresAt   time.Time         `json:"expires_at"`
	CreatedAt   time.Time         `json:"created_at"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
}

// recalcTotal keeps OrderTotal consistent after every mutation:
// subtotal plus delivery cost minus the applied coupon value.
func (s *Session) recalcTotal() {
	total := s.Subtotal
	if s.Delivery != nil {
		total += s.Delivery.Cost
	}
	if s.Coupon != nil {
		total -= s.Coupon.AppliedValue
	}
	if total < 0 {
		total = 0
	}
	s.OrderTotal = total
}

func (s *Session) expired(now time.Time) bool {
	return s.Status == SessionActive && now.After(s.ExpiresAt)
}

type SubmitAddressParams struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type SubmitPaymentParams struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVC    string `json:"card_cvc,omitempty"`
}
