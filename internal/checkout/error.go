package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrSessionExpired    = errors.New("checkout session has expired")
	ErrSessionConfirmed  = errors.New("checkout session is already confirmed")
	ErrEmptyCart         = errors.New("cannot start checkout with an empty cart")
	ErrStepNotReached    = errors.New("checkout step not reached yet")
	ErrAddressIncomplete = errors.New("shipping address is incomplete")
	ErrCouponAlreadySet  = errors.New("a coupon is already applied")
	ErrNoCouponApplied   = errors.New("no coupon applied")
)

// ValidationError reports a single invalid form field so the client can
// attach the message to the right input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
