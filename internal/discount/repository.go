package discount

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type Repository interface {
	List(ctx context.Context) ([]*Discount, error)
	GetByCode(ctx context.Context, code string) (*Discount, error)
	Create(ctx context.Context, params CreateDiscountParams) (*Discount, error)
	Deactivate(ctx context.Context, code string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Discount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, discount_type, value, min_purchase, starts_at, ends_at, active, created_at
		FROM discounts
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []*Discount
	for rows.Next() {
		var d Discount
		if err := rows.Scan(&d.ID, &d.Code, &d.Type, &d.Value, &d.MinPurchase,
			&d.StartsAt, &d.EndsAt, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		discounts = append(discounts, &d)
	}

	return discounts, rows.Err()
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Discount, error) {
	var d Discount
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, discount_type, value, min_purchase, starts_at, ends_at, active, created_at
		FROM discounts
		WHERE UPPER(code) = UPPER($1)`,
		code,
	).Scan(&d.ID, &d.Code, &d.Type, &d.Value, &d.MinPurchase,
		&d.StartsAt, &d.EndsAt, &d.Active, &d.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) Create(ctx context.Context, params CreateDiscountParams) (*Discount, error) {
	var d Discount
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO discounts (code, discount_type, value, min_purchase, starts_at, ends_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, code, discount_type, value, min_purchase, starts_at, ends_at, active, created_at`,
		params.Code, params.Type, params.Value, params.MinPurchase, params.StartsAt, params.EndsAt,
	).Scan(&d.ID, &d.Code, &d.Type, &d.Value, &d.MinPurchase,
		&d.StartsAt, &d.EndsAt, &d.Active, &d.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "discounts_code_key") {
			return nil, ErrCodeExists
		}
		return nil, err
	}

	return &d, nil
}

func (r *repository) Deactivate(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE discounts SET active = false WHERE UPPER(code) = UPPER($1)",
		code,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}

	return nil
}
