package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"fashniz-be/internal/cart"
	"fashniz-be/internal/checkout"
	"fashniz-be/internal/complaint"
	"fashniz-be/internal/discount"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/order"
	"fashniz-be/internal/payment"
	"fashniz-be/internal/product"
	"fashniz-be/internal/shipping"
	"fashniz-be/internal/user"
	"fashniz-be/internal/utils"
	"fashniz-be/internal/wishlist"

	"go.uber.org/zap"
)

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondError translates domain sentinel errors into HTTP statuses. Unknown
// errors become a 500 without leaking internals.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": ve.Message,
			"field": ve.Field,
		})
		return
	}

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, cart.ErrCartLineNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, wishlist.ErrItemNotFound),
		errors.Is(err, shipping.ErrMethodNotFound),
		errors.Is(err, discount.ErrCouponNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrProfileNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, checkout.ErrSessionExpired):
		utils.WriteJSONError(w, err.Error(), http.StatusGone)

	case errors.Is(err, checkout.ErrSessionConfirmed),
		errors.Is(err, checkout.ErrStepNotReached),
		errors.Is(err, checkout.ErrCouponAlreadySet),
		errors.Is(err, checkout.ErrNoCouponApplied),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, discount.ErrCodeExists):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, wishlist.ErrMissingProduct),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, order.ErrMissingOrderID),
		errors.Is(err, payment.ErrMissingCardDetails),
		errors.Is(err, discount.ErrCouponInactive),
		errors.Is(err, discount.ErrCouponNotStarted),
		errors.Is(err, discount.ErrCouponExpired),
		errors.Is(err, discount.ErrMinPurchaseNotMet),
		errors.Is(err, discount.ErrInvalidValue),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrSizeNotAvailable),
		errors.Is(err, complaint.ErrInvalidComplaint):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, order.ErrUnauthorized):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, payment.ErrTokenizationFailed):
		utils.WriteJSONError(w, err.Error(), http.StatusPaymentRequired)

	case errors.Is(err, payment.ErrProviderUnavailable):
		utils.WriteJSONError(w, err.Error(), http.StatusServiceUnavailable)

	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
