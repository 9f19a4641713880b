package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	ExpireStale(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const sessionColumns = `
	id, user_id, status, step, customer, delivery, payment, items,
	subtotal, coupon, order_total, order_id, expires_at, created_at, confirmed_at`

func (r *repository) Create(ctx context.Context, s *Session) error {
	customerJSON, deliveryJSON, paymentJSON, itemsJSON, couponJSON, err := marshalSession(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO checkout_sessions (id, user_id, status, step, customer, delivery, payment, items,
		                               subtotal, coupon, order_total, order_id, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.UserID, s.Status, s.Step, customerJSON, deliveryJSON, paymentJSON, itemsJSON,
		s.Subtotal, couponJSON, s.OrderTotal, s.OrderID, s.ExpiresAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to create checkout session", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Session, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+sessionColumns+" FROM checkout_sessions WHERE id = $1",
		id,
	)

	var (
		s            Session
		customerJSON []byte
		deliveryJSON []byte
		paymentJSON  []byte
		itemsJSON    []byte
		couponJSON   []byte
	)

	err := row.Scan(
		&s.ID, &s.UserID, &s.Status, &s.Step, &customerJSON, &deliveryJSON, &paymentJSON, &itemsJSON,
		&s.Subtotal, &couponJSON, &s.OrderTotal, &s.OrderID, &s.ExpiresAt, &s.CreatedAt, &s.ConfirmedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := unmarshalInto(customerJSON, &s.Customer); err != nil {
		return nil, err
	}
	if err := unmarshalInto(deliveryJSON, &s.Delivery); err != nil {
		return nil, err
	}
	if err := unmarshalInto(paymentJSON, &s.Payment); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, err
	}
	if err := unmarshalInto(couponJSON, &s.Coupon); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Session) error {
	customerJSON, deliveryJSON, paymentJSON, itemsJSON, couponJSON, err := marshalSession(s)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET status = $2, step = $3, customer = $4, delivery = $5, payment = $6, items = $7,
		    subtotal = $8, coupon = $9, order_total = $10, order_id = $11,
		    expires_at = $12, confirmed_at = $13
		WHERE id = $1`,
		s.ID, s.Status, s.Step, customerJSON, deliveryJSON, paymentJSON, itemsJSON,
		s.Subtotal, couponJSON, s.OrderTotal, s.OrderID, s.ExpiresAt, s.ConfirmedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update checkout session",
			zap.String("session_id", s.ID), zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ExpireStale flips active sessions past their deadline to expired. Run
// periodically from the server.
func (r *repository) ExpireStale(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET status = $1
		WHERE status = $2 AND expires_at < NOW()`,
		SessionExpired, SessionActive,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func marshalSession(s *Session) (customer, delivery, payment, items, coupon []byte, err error) {
	if customer, err = marshalNullable(s.Customer); err != nil {
		return
	}
	if delivery, err = marshalNullable(s.Delivery); err != nil {
		return
	}
	if payment, err = marshalNullable(s.Payment); err != nil {
		return
	}
	if items, err = json.Marshal(s.Items); err != nil {
		return
	}
	coupon, err = marshalNullable(s.Coupon)
	return
}

// marshalNullable maps a nil pointer to SQL NULL instead of the JSON
// literal "null".
func marshalNullable[T any](p *T) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func unmarshalInto(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
