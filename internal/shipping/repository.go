package shipping

import (
	"context"
	"database/sql"
	"errors"
)

var ErrMethodNotFound = errors.New("shipping method not found")

type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]*Method, error)
	GetByCode(ctx context.Context, code string) (*Method, error)
	Upsert(ctx context.Context, params UpsertMethodParams) (*Method, error)
	Delete(ctx context.Context, code string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]*Method, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, label, cost, estimated_days, active, created_at
		FROM shipping_methods
		WHERE (NOT $1 OR active)
		ORDER BY cost`,
		onlyActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []*Method
	for rows.Next() {
		var m Method
		if err := rows.Scan(&m.ID, &m.Code, &m.Label, &m.Cost, &m.EstimatedDays, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		methods = append(methods, &m)
	}

	return methods, rows.Err()
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Method, error) {
	var m Method
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, label, cost, estimated_days, active, created_at
		FROM shipping_methods
		WHERE code = $1`,
		code,
	).Scan(&m.ID, &m.Code, &m.Label, &m.Cost, &m.EstimatedDays, &m.Active, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMethodNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Upsert(ctx context.Context, params UpsertMethodParams) (*Method, error) {
	var m Method
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shipping_methods (code, label, cost, estimated_days, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			label          = EXCLUDED.label,
			cost           = EXCLUDED.cost,
			estimated_days = EXCLUDED.estimated_days,
			active         = EXCLUDED.active
		RETURNING id, code, label, cost, estimated_days, active, created_at`,
		params.Code, params.Label, params.Cost, params.EstimatedDays, params.Active,
	).Scan(&m.ID, &m.Code, &m.Label, &m.Cost, &m.EstimatedDays, &m.Active, &m.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE shipping_methods SET active = false WHERE code = $1",
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
		return ErrMethodNotFound
	}

	return nil
}
