package order

import (
	"context"
	"errors"
	"time"

	"fashniz-be/internal/events"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/mailer"
	"fashniz-be/internal/metrics"
	"fashniz-be/internal/shipping"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

func isSessionConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		pqErr.Code == "23505" &&
		pqErr.Constraint == "orders_session_id_key"
}

type Service interface {
	PlaceFromCheckout(ctx context.Context, o *Order, cartUserID uint) (*Order, error)
	Upsert(ctx context.Context, params UpsertParams) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrderForUser(ctx context.Context, orderID, email string, isAdmin bool) (*Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	SendConfirmation(ctx context.Context, orderID string) error
}

type service struct {
	repo         Repository
	shippingRepo shipping.Repository
	mail         mailer.Mailer
	bus          *events.Bus
}

func NewService(repo Repository, shippingRepo shipping.Repository, mail mailer.Mailer, bus *events.Bus) Service {
	return &service{
		repo:         repo,
		shippingRepo: shippingRepo,
		mail:         mail,
		bus:          bus,
	}
}

// PlaceFromCheckout persists a checkout-built order and clears the buyer's
// cart in one transaction. The checkout session ID acts as the idempotency
// key: replaying placement for an already-stored session returns the
// existing order unchanged.
func (s *service) PlaceFromCheckout(ctx context.Context, o *Order, cartUserID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.OrderID))

	if o.SessionID != nil {
		existing, err := s.repo.GetBySessionID(ctx, *o.SessionID)
		if err == nil && existing != nil {
			log.Info("order already placed for session, returning existing",
				zap.String("existing_order_id", existing.OrderID),
			)
			return existing, nil
		}
	}

	stored, err := s.repo.CreateFromCheckoutTx(ctx, o, cartUserID)
	if err != nil {
		// A concurrent placement for the same session loses the insert race
		// on the session_id unique constraint; the winner's order is the
		// answer, not an error.
		if o.SessionID != nil && isSessionConflict(err) {
			existing, lookupErr := s.repo.GetBySessionID(ctx, *o.SessionID)
			if lookupErr == nil {
				log.Info("concurrent placement, returning winning order",
					zap.String("existing_order_id", existing.OrderID),
				)
				return existing, nil
			}
		}
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	s.bus.Publish(events.TopicOrderPlaced, stored)

	log.Info("order placed",
		zap.Int64("total", stored.Total),
		zap.String("payment_method", stored.PaymentMethod),
	)

	return stored, nil
}

// Upsert normalizes a client-posted order payload and inserts or updates it,
// keyed by order_id.
func (s *service) Upsert(ctx context.Context, params UpsertParams) (*Order, error) {
	if params.OrderID == "" {
		return nil, ErrMissingOrderID
	}

	o, err := s.normalize(ctx, params)
	if err != nil {
		return nil, err
	}

	return s.repo.Upsert(ctx, o)
}

// normalize fills the defaults for a minimally-populated payload: status
// pending, payment cod, delivery standard with its cost from the shipping
// table, and an explicit total when the client omitted one.
func (s *service) normalize(ctx context.Context, params UpsertParams) (*Order, error) {
	o := &Order{
		OrderID:        params.OrderID,
		UserID:         params.UserID,
		Customer:       params.Customer,
		Items:          params.Items,
		DeliveryMethod: params.DeliveryMethod,
		PaymentMethod:  params.PaymentMethod,
		Subtotal:       params.Subtotal,
		Discount:       params.Discount,
		Total:          params.Total,
		Status:         Status(params.Status),
	}

	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = "cod"
	}
	if o.DeliveryMethod == "" {
		o.DeliveryMethod = shipping.CodeStandard
	}

	if params.DeliveryCost != nil {
		o.DeliveryCost = *params.DeliveryCost
	} else {
		method, err := s.shippingRepo.GetByCode(ctx, o.DeliveryMethod)
		if err != nil {
			return nil, err
		}
		o.DeliveryCost = method.Cost
	}

	if o.Items == nil {
		o.Items = []Item{}
	}
	if o.Subtotal == 0 {
		for _, it := range o.Items {
			o.Subtotal += it.Subtotal
		}
	}
	if o.Total == 0 {
		o.Total = o.Subtotal + o.DeliveryCost - o.Discount
	}

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// GetOrderForUser fetches an order and rejects access when the requester is
// neither an admin nor the customer the order belongs to.
func (s *service) GetOrderForUser(ctx context.Context, orderID, email string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.Customer.Email != email {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) GetOrdersByEmail(ctx context.Context, email string) ([]*Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.List(ctx, status)
}

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	o, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range validTransitions[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}

// SendConfirmation emails the order receipt. Used both by the explicit
// endpoint and by the order-placed subscriber.
func (s *service) SendConfirmation(ctx context.Context, orderID string) error {
	o, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	return s.mail.SendOrderConfirmation(ctx, o.Customer.Email, o.OrderID, o.Total)
}

// StartConfirmationWorker subscribes to placed orders and fires the
// confirmation email for each. Send failures are logged and dropped; email
// is best-effort and never blocks or fails an order.
func StartConfirmationWorker(bus *events.Bus, mail mailer.Mailer) func() {
	ch, cancel := bus.Subscribe(events.TopicOrderPlaced)

	go func() {
		for ev := range ch {
			o, ok := ev.Payload.(*Order)
			if !ok {
				continue
			}

			ctx, done := context.WithTimeout(context.Background(), 15*time.Second)
			if err := mail.SendOrderConfirmation(ctx, o.Customer.Email, o.OrderID, o.Total); err != nil {
				metrics.EmailSendFailures.Inc()
				logger.L().Warn("confirmation email failed",
					zap.String("order_id", o.OrderID),
					zap.Error(err),
				)
			}
			done()
		}
	}()

	return cancel
}
