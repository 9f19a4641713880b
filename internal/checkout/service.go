package checkout

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fashniz-be/internal/cart"
	"fashniz-be/internal/discount"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/metrics"
	"fashniz-be/internal/order"
	"fashniz-be/internal/payment"
	"fashniz-be/internal/product"
	"fashniz-be/internal/shipping"
	"fashniz-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateSession(ctx context.Context, userID uint) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	SubmitAddress(ctx context.Context, sessionID string, params SubmitAddressParams) (*Session, error)
	SelectDelivery(ctx context.Context, sessionID, methodCode string) (*Session, error)
	SubmitPayment(ctx context.Context, sessionID string, params SubmitPaymentParams) (*Session, error)
	ApplyCoupon(ctx context.Context, sessionID, code string) (*Session, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*Session, error)
	GoBack(ctx context.Context, sessionID string, step Step) (*Session, error)
	PlaceOrder(ctx context.Context, sessionID string) (*order.Order, error)
}

type service struct {
	repo         Repository
	cartRepo     cart.Repository
	productRepo  product.Repository
	shippingRepo shipping.Repository
	discountSvc  discount.Service
	gateway      payment.Gateway
	orderSvc     order.Service
	now          func() time.Time
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	productRepo product.Repository,
	shippingRepo shipping.Repository,
	discountSvc discount.Service,
	gateway payment.Gateway,
	orderSvc order.Service,
) Service {
	return &service{
		repo:         repo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		shippingRepo: shippingRepo,
		discountSvc:  discountSvc,
		gateway:      gateway,
		orderSvc:     orderSvc,
		now:          time.Now,
	}
}

// CreateSession snapshots the user's cart into a new wizard session. Prices
// come from the catalog at this moment and stay fixed for the session's
// lifetime.
func (s *service) CreateSession(ctx context.Context, userID uint) (*Session, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("user_id", userID))

	lines, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]order.Item, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		p, err := s.productRepo.GetByID(ctx, line.ProductID, true)
		if err != nil {
			return nil, err
		}

		lineSubtotal := p.Price * int64(line.Quantity)
		items = append(items, order.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     p.Price,
			Subtotal:  lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    SessionActive,
		Step:      StepAddress,
		Items:     items,
		Subtotal:  subtotal,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	session.recalcTotal()

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.Int("items", len(items)),
		zap.Int64("subtotal", subtotal),
	)

	return session, nil
}

// ownedBy rejects a session that belongs to a different authenticated user.
// Holding the UUID is not enough to read or drive someone else's checkout.
// A mismatch reads as not-found so the ID's existence is not leaked.
func ownedBy(ctx context.Context, session *Session) bool {
	uid, ok := utils.GetUserIDFromContext(ctx)
	return !ok || uid == session.UserID
}

func (s *service) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(ctx, session) {
		return nil, ErrSessionNotFound
	}

	if session.expired(s.now()) {
		s.markExpired(ctx, session)
	}

	return session, nil
}

// loadActive fetches a session that can still be mutated. Expired sessions
// are flipped to their terminal status on the way through.
func (s *service) loadActive(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(ctx, session) {
		return nil, ErrSessionNotFound
	}

	if session.expired(s.now()) {
		s.markExpired(ctx, session)
		return nil, ErrSessionExpired
	}

	switch session.Status {
	case SessionExpired:
		return nil, ErrSessionExpired
	case SessionConfirmed:
		return nil, ErrSessionConfirmed
	}

	return session, nil
}

func (s *service) markExpired(ctx context.Context, session *Session) {
	session.Status = SessionExpired
	if err := s.repo.Update(ctx, session); err != nil {
		logger.FromCtx(ctx).Warn("failed to mark session expired",
			zap.String("session_id", session.ID), zap.Error(err))
	}
}

func (s *service) SubmitAddress(ctx context.Context, sessionID string, params SubmitAddressParams) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := validateAddress(params); err != nil {
		return nil, err
	}

	session.Customer = &order.Customer{
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     strings.TrimSpace(params.Email),
		Phone:     params.Phone,
		Address: order.Address{
			Line1:      strings.TrimSpace(params.Line1),
			Line2:      strings.TrimSpace(params.Line2),
			City:       strings.TrimSpace(params.City),
			State:      strings.TrimSpace(params.State),
			PostalCode: params.PostalCode,
			Country:    strings.TrimSpace(params.Country),
		},
	}

	if session.Step == StepAddress {
		session.Step = StepDelivery
	}
	session.recalcTotal()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func validateAddress(p SubmitAddressParams) error {
	required := []struct{ field, value string }{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"line1", p.Line1},
		{"city", p.City},
		{"state", p.State},
		{"country", p.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fieldError(r.field, "is required")
		}
	}

	if !utils.ValidEmail(strings.TrimSpace(p.Email)) {
		return fieldError("email", "must be a valid email address")
	}
	if !utils.ValidPhone(p.Phone) {
		return fieldError("phone", "must be exactly 10 digits")
	}
	if !utils.ValidPostalCode(p.PostalCode) {
		return fieldError("postal_code", "must be exactly 6 digits")
	}

	return nil
}

func (s *service) SelectDelivery(ctx context.Context, sessionID, methodCode string) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Customer == nil {
		return nil, ErrStepNotReached
	}

	method, err := s.shippingRepo.GetByCode(ctx, methodCode)
	if err != nil {
		return nil, err
	}

	session.Delivery = &Delivery{Method: method.Code, Cost: method.Cost}
	if session.Step == StepDelivery {
		session.Step = StepPayment
	}
	session.recalcTotal()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SubmitPayment records the chosen payment method. Card payments are
// tokenized synchronously before the step completes; raw card data is never
// stored.
func (s *service) SubmitPayment(ctx context.Context, sessionID string, params SubmitPaymentParams) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Customer == nil || session.Delivery == nil {
		return nil, ErrStepNotReached
	}

	switch payment.Method(params.Method) {
	case payment.MethodCOD:
		session.Payment = &Payment{Method: string(payment.MethodCOD)}

	case payment.MethodCard:
		card, err := parseCard(params)
		if err != nil {
			return nil, err
		}

		token, err := s.gateway.Tokenize(ctx, card)
		if err != nil {
			return nil, err
		}

		session.Payment = &Payment{
			Method:    string(payment.MethodCard),
			CardToken: token.ID,
			CardLast4: token.Last4,
		}

	default:
		return nil, fieldError("method", "must be cod or card")
	}

	if session.Step == StepPayment {
		session.Step = StepReview
	}
	session.recalcTotal()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func parseCard(p SubmitPaymentParams) (payment.CardDetails, error) {
	number := strings.ReplaceAll(p.CardNumber, " ", "")
	if number == "" || p.CardExpiry == "" || p.CardCVC == "" {
		return payment.CardDetails{}, payment.ErrMissingCardDetails
	}

	parts := strings.SplitN(p.CardExpiry, "/", 2)
	if len(parts) != 2 {
		return payment.CardDetails{}, fieldError("card_expiry", "must be in MM/YY format")
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return payment.CardDetails{}, fieldError("card_expiry", "month must be between 01 and 12")
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return payment.CardDetails{}, fieldError("card_expiry", "must be in MM/YY format")
	}
	if year < 100 {
		year += 2000
	}

	return payment.CardDetails{
		Number:   number,
		ExpMonth: month,
		ExpYear:  year,
		CVC:      p.CardCVC,
		Name:     p.CardName,
	}, nil
}

// ApplyCoupon validates and attaches a coupon at the review step. At most
// one coupon may be active on a session.
func (s *service) ApplyCoupon(ctx context.Context, sessionID, code string) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != StepReview {
		return nil, ErrStepNotReached
	}
	if session.Coupon != nil {
		return nil, ErrCouponAlreadySet
	}

	applied, err := s.discountSvc.Validate(ctx, code, session.Subtotal, s.now())
	if err != nil {
		return nil, err
	}

	session.Coupon = applied
	session.recalcTotal()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	metrics.CouponsApplied.Inc()
	logger.FromCtx(ctx).Info("coupon applied",
		zap.String("session_id", session.ID),
		zap.String("code", applied.Code),
		zap.Int64("applied_value", applied.AppliedValue),
	)

	return session, nil
}

func (s *service) RemoveCoupon(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Coupon == nil {
		return nil, ErrNoCouponApplied
	}

	session.Coupon = nil
	session.recalcTotal()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// GoBack rewinds the wizard to an earlier step. Data captured at later
// steps is kept so moving forward again does not re-ask for it.
func (s *service) GoBack(ctx context.Context, sessionID string, step Step) (*Session, error) {
	session, err := s.loadActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	target := stepIndex(step)
	if target < 0 || step == StepConfirmation {
		return nil, fieldError("step", "unknown step")
	}
	if target > stepIndex(session.Step) {
		return nil, ErrStepNotReached
	}

	session.Step = step
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// PlaceOrder turns a reviewed session into a stored order. It is idempotent:
// replaying it for a confirmed session returns the order placed the first
// time.
func (s *service) PlaceOrder(ctx context.Context, sessionID string) (*order.Order, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(ctx, session) {
		return nil, ErrSessionNotFound
	}

	if session.Status == SessionConfirmed && session.OrderID != nil {
		return s.orderSvc.GetOrder(ctx, *session.OrderID)
	}

	if session.expired(s.now()) {
		s.markExpired(ctx, session)
		return nil, ErrSessionExpired
	}
	if session.Status == SessionExpired {
		return nil, ErrSessionExpired
	}
	if session.Step != StepReview {
		return nil, ErrStepNotReached
	}
	if session.Customer == nil || session.Delivery == nil || session.Payment == nil {
		return nil, ErrStepNotReached
	}

	// The coupon snapshot may have been deactivated or passed its window
	// since the apply; check it against the live discount table before any
	// money moves.
	if session.Coupon != nil {
		applied, err := s.discountSvc.Validate(ctx, session.Coupon.Code, session.Subtotal, s.now())
		if err != nil {
			session.Coupon = nil
			session.recalcTotal()
			if uerr := s.repo.Update(ctx, session); uerr != nil {
				logger.FromCtx(ctx).Warn("failed to drop stale coupon",
					zap.String("session_id", session.ID), zap.Error(uerr))
			}
			return nil, err
		}
		session.Coupon = applied
		session.recalcTotal()
	}

	var couponValue int64
	if session.Coupon != nil {
		couponValue = session.Coupon.AppliedValue
	}

	o := &order.Order{
		OrderID:        utils.GenerateOrderNumber(),
		SessionID:      &session.ID,
		UserID:         &session.UserID,
		Customer:       *session.Customer,
		Items:          session.Items,
		DeliveryMethod: session.Delivery.Method,
		DeliveryCost:   session.Delivery.Cost,
		PaymentMethod:  session.Payment.Method,
		Subtotal:       session.Subtotal,
		Discount:       couponValue,
		Total:          session.OrderTotal,
		Status:         order.StatusPending,
	}

	placed, err := s.orderSvc.PlaceFromCheckout(ctx, o, session.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.Status = SessionConfirmed
	session.Step = StepConfirmation
	session.OrderID = &placed.OrderID
	session.ConfirmedAt = &now

	if err := s.repo.Update(ctx, session); err != nil {
		// The order is stored; losing the session update only costs the
		// idempotency shortcut, which the order's session_id key still covers.
		logger.FromCtx(ctx).Warn("failed to confirm session after order placement",
			zap.String("session_id", session.ID), zap.Error(err))
	}

	return placed, nil
}
