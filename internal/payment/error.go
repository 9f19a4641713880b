package payment

import "errors"

var (
	ErrTokenizationFailed  = errors.New("card tokenization failed")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrMissingCardDetails  = errors.New("card details are required")
)
