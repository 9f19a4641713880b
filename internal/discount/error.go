package discount

import "errors"

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotStarted  = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrMinPurchaseNotMet = errors.New("minimum purchase not met")
	ErrInvalidValue      = errors.New("invalid discount value")
	ErrCodeExists        = errors.New("coupon code already exists")
)
