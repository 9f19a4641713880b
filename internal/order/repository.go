package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, o *Order) (*Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]*Order, error)
	List(ctx context.Context, status string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	CreateFromCheckoutTx(ctx context.Context, o *Order, clearCartUserID uint) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_id, session_id, user_id, customer, items,
	delivery_method, delivery_cost, payment_method,
	subtotal, discount, total, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o            Order
		customerJSON []byte
		itemsJSON    []byte
	)

	err := row.Scan(
		&o.ID, &o.OrderID, &o.SessionID, &o.UserID, &customerJSON, &itemsJSON,
		&o.DeliveryMethod, &o.DeliveryCost, &o.PaymentMethod,
		&o.Subtotal, &o.Discount, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, err
	}

	return &o, nil
}

const upsertQuery = `
	INSERT INTO orders (order_id, session_id, user_id, customer, items,
	                    delivery_method, delivery_cost, payment_method,
	                    subtotal, discount, total, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (order_id) DO UPDATE SET
		customer        = EXCLUDED.customer,
		items           = EXCLUDED.items,
		delivery_method = EXCLUDED.delivery_method,
		delivery_cost   = EXCLUDED.delivery_cost,
		payment_method  = EXCLUDED.payment_method,
		subtotal        = EXCLUDED.subtotal,
		discount        = EXCLUDED.discount,
		total           = EXCLUDED.total,
		status          = EXCLUDED.status,
		updated_at      = NOW()
	RETURNING ` + orderColumns

func (r *repository) Upsert(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx)

	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, upsertQuery,
		o.OrderID, o.SessionID, o.UserID, customerJSON, itemsJSON,
		o.DeliveryMethod, o.DeliveryCost, o.PaymentMethod,
		o.Subtotal, o.Discount, o.Total, o.Status,
	)

	stored, err := scanOrder(row)
	if err != nil {
		log.Error("db: failed to upsert order", zap.String("order_id", o.OrderID), zap.Error(err))
		return nil, err
	}

	return stored, nil
}

// CreateFromCheckoutTx writes the order and clears the owner's cart in one
// transaction so a failed write never leaves an emptied cart behind.
func (r *repository) CreateFromCheckoutTx(ctx context.Context, o *Order, clearCartUserID uint) (*Order, error) {
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, upsertQuery,
		o.OrderID, o.SessionID, o.UserID, customerJSON, itemsJSON,
		o.DeliveryMethod, o.DeliveryCost, o.PaymentMethod,
		o.Subtotal, o.Discount, o.Total, o.Status,
	)

	stored, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_lines WHERE user_id = $1", clearCartUserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE order_id = $1",
		orderID,
	)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetBySessionID(ctx context.Context, sessionID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE session_id = $1",
		sessionID,
	)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE customer->>'email' = $1 ORDER BY created_at DESC",
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) List(ctx context.Context, status string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC",
		status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $2, updated_at = NOW() WHERE order_id = $1",
		orderID, status,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
