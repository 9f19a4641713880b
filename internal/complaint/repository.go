package complaint

import (
	"context"
	"database/sql"
	"errors"
)

var ErrComplaintNotFound = errors.New("complaint not found")

type Repository interface {
	Create(ctx context.Context, params CreateComplaintParams) (*Complaint, error)
	List(ctx context.Context) ([]*Complaint, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, params CreateComplaintParams) (*Complaint, error) {
	var c Complaint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO complaints (user_id, email, order_id, category, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, email, order_id, category, message, status, created_at`,
		params.UserID, params.Email, params.OrderID, params.Category, params.Message, StatusOpen,
	).Scan(&c.ID, &c.UserID, &c.Email, &c.OrderID, &c.Category, &c.Message, &c.Status, &c.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Complaint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, email, order_id, category, message, status, created_at
		FROM complaints
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []*Complaint
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.Email, &c.OrderID,
			&c.Category, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, &c)
	}

	return complaints, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE complaints SET status = $2 WHERE id = $1",
		id, status,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrComplaintNotFound
	}

	return nil
}
