package cart

import (
	"context"
	"database/sql"
	"errors"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCart(ctx context.Context, userID uint) ([]*CartLine, error)
	GetLine(ctx context.Context, userID uint, productID, size string) (*CartLine, error)
	CreateLine(ctx context.Context, params AddToCartParams) (*CartLine, error)
	UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) (*CartLine, error)
	RemoveLine(ctx context.Context, params RemoveFromCartParams) error
	ClearCart(ctx context.Context, userID uint) error
	ClearCartTx(ctx context.Context, tx *sql.Tx, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, userID uint) ([]*CartLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, size, quantity, created_at, updated_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to get cart", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []*CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Size, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, &l)
	}

	return lines, rows.Err()
}

func (r *repository) GetLine(ctx context.Context, userID uint, productID, size string) (*CartLine, error) {
	var l CartLine
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, size, quantity, created_at, updated_at
		FROM cart_lines
		WHERE user_id = $1 AND product_id = $2 AND size = $3`,
		userID, productID, size,
	).Scan(&l.ID, &l.UserID, &l.ProductID, &l.Size, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *repository) CreateLine(ctx context.Context, params AddToCartParams) (*CartLine, error) {
	var l CartLine
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_lines (user_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, product_id, size, quantity, created_at, updated_at`,
		params.UserID, params.ProductID, params.Size, params.Quantity,
	).Scan(&l.ID, &l.UserID, &l.ProductID, &l.Size, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *repository) UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) (*CartLine, error) {
	var l CartLine
	err := r.db.QueryRowContext(ctx, `
		UPDATE cart_lines
		SET quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, product_id, size, quantity, created_at, updated_at`,
		lineID, quantity,
	).Scan(&l.ID, &l.UserID, &l.ProductID, &l.Size, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartLineNotFound
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *repository) RemoveLine(ctx context.Context, params RemoveFromCartParams) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_lines
		WHERE user_id = $1 AND product_id = $2 AND size = $3`,
		params.UserID, params.ProductID, params.Size,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}

	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_lines WHERE user_id = $1", userID)
	return err
}

// ClearCartTx clears the cart inside the caller's transaction so order
// placement and cart clearing commit or roll back together.
func (r *repository) ClearCartTx(ctx context.Context, tx *sql.Tx, userID uint) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart_lines WHERE user_id = $1", userID)
	return err
}
