package order

import (
	"context"
	"errors"
	"time"

	"fashniz-be/internal/logger"
	"fashniz-be/internal/metrics"

	"go.uber.org/zap"
)

const (
	reconcileAttempts = 3
	reconcileDelay    = 2 * time.Second
)

// Reconciler recovers orders whose client-side confirmation was interrupted:
// the payment went through but the browser never saw the stored order. It
// looks the order up by number and, when a locally captured payload exists,
// re-submits it as a pending order before retrying the lookup.
type Reconciler struct {
	svc   Service
	delay time.Duration
}

func NewReconciler(svc Service) *Reconciler {
	return &Reconciler{svc: svc, delay: reconcileDelay}
}

// Reconcile returns the stored order for orderID, retrying up to two extra
// times with a fixed delay between attempts. pending, when non-nil, is the
// client's captured payload; it is upserted with pending defaults before
// the retries so the follow-up lookups can find it.
func (r *Reconciler) Reconcile(ctx context.Context, orderID string, pending *UpsertParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	o, err := r.svc.GetOrder(ctx, orderID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, ErrOrderNotFound) {
		return nil, err
	}

	if pending != nil {
		pending.OrderID = orderID
		pending.Status = string(StatusPending)

		if _, err := r.svc.Upsert(ctx, *pending); err != nil {
			log.Warn("failed to store pending order payload", zap.Error(err))
		} else {
			log.Info("stored pending order from captured payload")
		}
	}

	for attempt := 2; attempt <= reconcileAttempts; attempt++ {
		if err := r.wait(ctx); err != nil {
			return nil, err
		}

		o, err = r.svc.GetOrder(ctx, orderID)
		if err == nil {
			metrics.OrdersReconciled.Inc()
			log.Info("order reconciled", zap.Int("attempt", attempt))
			return o, nil
		}
		if !errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
	}

	log.Warn("order not found after reconciliation attempts")
	return nil, ErrOrderNotFound
}

func (r *Reconciler) wait(ctx context.Context) error {
	t := time.NewTimer(r.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
